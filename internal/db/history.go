package db

import (
	"time"

	"gold-goblin/internal/auctions"
)

// GetAuctionHistory retrieves cached auction history for an item.
// Returns nil, false if not cached or if the cache is older than maxAge.
func (d *DB) GetAuctionHistory(itemID int32, maxAge time.Duration) ([]auctions.HistoryPoint, bool) {
	var updatedAt string
	err := d.sql.QueryRow(
		"SELECT updated_at FROM auction_history_meta WHERE item_id=?", itemID,
	).Scan(&updatedAt)
	if err != nil {
		return nil, false
	}

	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil || time.Since(t) > maxAge {
		return nil, false
	}

	rows, err := d.sql.Query(
		"SELECT ts, bid, min_buy, avg_price, quantity FROM auction_history WHERE item_id=? ORDER BY ts",
		itemID,
	)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var points []auctions.HistoryPoint
	for rows.Next() {
		var ts string
		var p auctions.HistoryPoint
		if err := rows.Scan(&ts, &p.Bid, &p.MinBuy, &p.AvgPrice, &p.Quantity); err != nil {
			continue
		}
		when, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}
		p.Time = when
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, false
	}
	return points, true
}

// SetAuctionHistory stores history points for an item. Only points from the
// last 90 days are kept to bound database growth. A point sharing a
// timestamp with an existing row replaces it.
func (d *DB) SetAuctionHistory(itemID int32, points []auctions.HistoryPoint) {
	tx, err := d.sql.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	tx.Exec("DELETE FROM auction_history WHERE item_id=?", itemID)

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO auction_history (item_id, ts, bid, min_buy, avg_price, quantity) VALUES (?,?,?,?,?,?)")
	if err != nil {
		return
	}
	defer stmt.Close()

	cutoff := time.Now().AddDate(0, 0, -90)
	for _, p := range points {
		if p.Time.Before(cutoff) {
			continue
		}
		stmt.Exec(itemID, p.Time.UTC().Format(time.RFC3339), p.Bid, p.MinBuy, p.AvgPrice, p.Quantity)
	}

	tx.Exec(
		"INSERT OR REPLACE INTO auction_history_meta (item_id, updated_at) VALUES (?,?)",
		itemID, time.Now().UTC().Format(time.RFC3339),
	)
	tx.Commit()
}
