package market

import "sort"

// Minimum observations a weekday needs before it can anchor a flip signal.
const minWeekdaySamples = 3

// ItemStats summarizes an item's market over the loaded period.
type ItemStats struct {
	ItemID        int32    `json:"item_id"`
	Name          string   `json:"name"`
	Avg30d        float64  `json:"avg_30d"`
	Avg7d         *float64 `json:"avg_7d"`
	TrendPct      float64  `json:"trend_pct"`
	BestBuyDay    string   `json:"best_buy_day"`
	BestBuyPrice  float64  `json:"best_buy_price"`
	BestSellDay   string   `json:"best_sell_day"`
	BestSellPrice float64  `json:"best_sell_price"`
	FlipProfitPct float64  `json:"flip_profit_pct"`
}

// DailyPattern describes the historically best weekdays to buy and sell.
type DailyPattern struct {
	BestBuyDay    string  `json:"best_buy_day"`
	BestBuyPrice  float64 `json:"best_buy_price"`
	BestSellDay   string  `json:"best_sell_day"`
	BestSellPrice float64 `json:"best_sell_price"`
	FlipProfitPct float64 `json:"flip_profit_pct"`
}

// TrailingAvg returns the mean avg_price over the trailing N-day window.
// The second return is false when the window holds no observations;
// "no data" must stay distinct from an average of zero.
func (s *Series) TrailingAvg(days int) (float64, bool) {
	window := s.Window(days)
	if len(window) == 0 {
		return 0, false
	}
	var sum float64
	for _, o := range window {
		sum += o.AvgPrice
	}
	return sum / float64(len(window)), true
}

// Trend7v30 returns the 7-day vs 30-day average delta in percent.
// An explicit 0 means "no signal": either window missing, or a zero
// 30-day average that would make the ratio meaningless.
func (s *Series) Trend7v30() float64 {
	avg7, ok7 := s.TrailingAvg(7)
	avg30, ok30 := s.TrailingAvg(30)
	if !ok7 || !ok30 || avg30 == 0 {
		return 0
	}
	return (avg7 - avg30) / avg30 * 100
}

// AnalyzeDailyPattern groups observations by weekday and finds the cheapest
// and most expensive qualifying days. Weekdays with fewer than three samples
// are discarded as noise. Ties break toward the alphabetically first weekday
// so repeated runs agree.
func (s *Series) AnalyzeDailyPattern() DailyPattern {
	type dayAgg struct {
		sum   float64
		count int
	}
	byDay := make(map[string]*dayAgg)
	for _, o := range s.Points {
		day := o.Time.Weekday().String()
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{}
			byDay[day] = agg
		}
		agg.sum += o.AvgPrice
		agg.count++
	}

	days := make([]string, 0, len(byDay))
	for day, agg := range byDay {
		if agg.count >= minWeekdaySamples {
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return DailyPattern{BestBuyDay: "N/A", BestSellDay: "N/A"}
	}
	sort.Strings(days)

	p := DailyPattern{}
	for _, day := range days {
		mean := byDay[day].sum / float64(byDay[day].count)
		if p.BestBuyDay == "" || mean < p.BestBuyPrice {
			p.BestBuyDay = day
			p.BestBuyPrice = mean
		}
		if p.BestSellDay == "" || mean > p.BestSellPrice {
			p.BestSellDay = day
			p.BestSellPrice = mean
		}
	}
	if p.BestBuyPrice > 0 {
		p.FlipProfitPct = (p.BestSellPrice - p.BestBuyPrice) / p.BestBuyPrice * 100
	}
	return p
}

// Stats computes the full statistics summary for one item.
func (s *Series) Stats() (ItemStats, bool) {
	if len(s.Points) == 0 {
		return ItemStats{}, false
	}

	avg30, _ := s.TrailingAvg(30) // non-empty series always has a 30d window
	stats := ItemStats{
		ItemID:   s.ItemID,
		Name:     s.Name,
		Avg30d:   avg30,
		TrendPct: s.Trend7v30(),
	}
	if avg7, ok := s.TrailingAvg(7); ok {
		stats.Avg7d = &avg7
	}

	pattern := s.AnalyzeDailyPattern()
	stats.BestBuyDay = pattern.BestBuyDay
	stats.BestBuyPrice = pattern.BestBuyPrice
	stats.BestSellDay = pattern.BestSellDay
	stats.BestSellPrice = pattern.BestSellPrice
	stats.FlipProfitPct = pattern.FlipProfitPct
	return stats, true
}
