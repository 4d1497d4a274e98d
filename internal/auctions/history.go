package auctions

import (
	"fmt"
	"sort"
	"time"
)

// HistoryPoint is one hourly auction-house snapshot for an item, as returned
// by the wowauctions API. Prices are in copper (1 gold = 10,000 copper).
type HistoryPoint struct {
	Time     time.Time
	Bid      float64
	MinBuy   float64
	AvgPrice float64
	Quantity int64
}

// rawPoint mirrors the per-timestamp JSON object in the API response.
type rawPoint struct {
	Bid         float64 `json:"bid"`
	MinBuyout   float64 `json:"minBuyout"`
	MarketValue float64 `json:"marketValue"`
	Quantity    int64   `json:"quantity"`
}

// timeLayout matches the API's "YYYY,MM,DD,HH" timestamp keys.
const timeLayout = "2006,01,02,15"

// parseHistory converts the API's timestamp-keyed object into chronologically
// sorted history points. Keys that do not parse as timestamps are rejected:
// a malformed key means the response shape changed.
func parseHistory(raw map[string]rawPoint) ([]HistoryPoint, error) {
	points := make([]HistoryPoint, 0, len(raw))
	for key, p := range raw {
		ts, err := time.Parse(timeLayout, key)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp key %q: %w", key, err)
		}
		points = append(points, HistoryPoint{
			Time:     ts,
			Bid:      p.Bid,
			MinBuy:   p.MinBuyout,
			AvgPrice: p.MarketValue,
			Quantity: p.Quantity,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}
