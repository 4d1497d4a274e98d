package market

import (
	"sort"
	"time"

	"gold-goblin/internal/auctions"
)

// CopperPerGold is the fixed unit conversion applied when building series.
const CopperPerGold = 10000

// Observation is one hourly price snapshot for an item, in gold.
type Observation struct {
	ItemID   int32     `json:"item_id"`
	Time     time.Time `json:"time"`
	Bid      float64   `json:"bid"`
	MinBuy   float64   `json:"min_buy"`
	AvgPrice float64   `json:"avg_price"`
	Quantity int64     `json:"quantity"`
}

// Series holds all observations for one item, sorted by time ascending,
// at most one observation per timestamp.
type Series struct {
	ItemID int32
	Name   string
	Points []Observation
}

// BuildSeries converts raw copper-priced history points into a gold-priced
// series. Points sharing a timestamp collapse to the last one seen.
func BuildSeries(itemID int32, name string, points []auctions.HistoryPoint) *Series {
	byTime := make(map[time.Time]Observation, len(points))
	for _, p := range points {
		byTime[p.Time] = Observation{
			ItemID:   itemID,
			Time:     p.Time,
			Bid:      p.Bid / CopperPerGold,
			MinBuy:   p.MinBuy / CopperPerGold,
			AvgPrice: p.AvgPrice / CopperPerGold,
			Quantity: p.Quantity,
		}
	}

	s := &Series{ItemID: itemID, Name: name, Points: make([]Observation, 0, len(byTime))}
	for _, o := range byTime {
		s.Points = append(s.Points, o)
	}
	sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].Time.Before(s.Points[j].Time) })
	return s
}

// Latest returns the most recent observation.
func (s *Series) Latest() (Observation, bool) {
	if len(s.Points) == 0 {
		return Observation{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// CurrentPrice returns the avg_price of the most recent observation.
func (s *Series) CurrentPrice() (float64, bool) {
	latest, ok := s.Latest()
	if !ok {
		return 0, false
	}
	return latest.AvgPrice, true
}

// Window returns all observations with time >= latest - days (inclusive).
// The window is anchored at the series' own latest timestamp, not wall clock,
// so stale data still yields well-defined statistics.
func (s *Series) Window(days int) []Observation {
	latest, ok := s.Latest()
	if !ok || days <= 0 {
		return nil
	}
	cutoff := latest.Time.AddDate(0, 0, -days)
	for i, o := range s.Points {
		if !o.Time.Before(cutoff) {
			return s.Points[i:]
		}
	}
	return nil
}

// Store is the in-memory price series table, rebuilt wholesale per run.
type Store struct {
	series map[int32]*Series
	order  []int32
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{series: make(map[int32]*Series)}
}

// Add registers a series, replacing any previous series for the same item.
func (st *Store) Add(s *Series) {
	if _, exists := st.series[s.ItemID]; !exists {
		st.order = append(st.order, s.ItemID)
		sort.Slice(st.order, func(i, j int) bool { return st.order[i] < st.order[j] })
	}
	st.series[s.ItemID] = s
}

// Series returns the series for an item.
func (st *Store) Series(itemID int32) (*Series, bool) {
	s, ok := st.series[itemID]
	return s, ok
}

// ItemIDs returns the IDs of all items with data, in ascending order.
func (st *Store) ItemIDs() []int32 {
	return st.order
}

// Len returns the number of series in the store.
func (st *Store) Len() int {
	return len(st.series)
}
