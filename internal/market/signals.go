package market

import (
	"math"
	"sort"
	"time"
)

// DefaultSignalThresholdPct is the minimum 3-day deviation that counts
// as an actionable buy/sell opportunity.
const DefaultSignalThresholdPct = 5

// Opportunity is a buy-now or sell-now signal for one item.
type Opportunity struct {
	ItemID       int32     `json:"item_id"`
	Name         string    `json:"name"`
	CurrentPrice float64   `json:"current_price"`
	Avg3d        float64   `json:"avg_3d"`
	PriceDiff    float64   `json:"price_diff"` // current - 3d avg, gold
	PctDiff      float64   `json:"pct_diff"`   // negative = cheaper than usual
	LastUpdated  time.Time `json:"last_updated"`
}

// Signal compares the latest price to the mean of the 3-day window strictly
// preceding it. No preceding data means no signal.
func (s *Series) Signal() (Opportunity, bool) {
	latest, ok := s.Latest()
	if !ok {
		return Opportunity{}, false
	}

	cutoff := latest.Time.AddDate(0, 0, -3)
	var sum float64
	var count int
	for _, o := range s.Points {
		if !o.Time.Before(cutoff) && o.Time.Before(latest.Time) {
			sum += o.AvgPrice
			count++
		}
	}
	if count == 0 {
		return Opportunity{}, false
	}

	avg3d := sum / float64(count)
	if avg3d == 0 {
		return Opportunity{}, false
	}
	return Opportunity{
		ItemID:       s.ItemID,
		Name:         s.Name,
		CurrentPrice: latest.AvgPrice,
		Avg3d:        avg3d,
		PriceDiff:    latest.AvgPrice - avg3d,
		PctDiff:      (latest.AvgPrice - avg3d) / avg3d * 100,
		LastUpdated:  latest.Time,
	}, true
}

// Opportunities scans every item for buy and sell signals at the given
// deviation threshold. Buys are sorted by largest absolute discount,
// sells by largest premium.
func (st *Store) Opportunities(thresholdPct float64) (buys, sells []Opportunity) {
	for _, itemID := range st.ItemIDs() {
		s := st.series[itemID]
		opp, ok := s.Signal()
		if !ok {
			continue
		}
		switch {
		case opp.PctDiff <= -thresholdPct:
			buys = append(buys, opp)
		case opp.PctDiff >= thresholdPct:
			sells = append(sells, opp)
		}
	}

	sort.SliceStable(buys, func(i, j int) bool {
		return math.Abs(buys[i].PriceDiff) > math.Abs(buys[j].PriceDiff)
	})
	sort.SliceStable(sells, func(i, j int) bool {
		return sells[i].PriceDiff > sells[j].PriceDiff
	})
	return buys, sells
}
