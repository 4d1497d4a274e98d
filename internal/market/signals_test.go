package market

import (
	"math"
	"testing"
	"time"
)

func TestSignal_OreDropEndToEnd(t *testing.T) {
	// 21 six-hourly points at 1g; the last drops to 0.8g. The 3-day
	// average of the preceding window stays at 1g, so the drop is a -20%
	// buy signal.
	prices := make([]float64, 21)
	for i := range prices {
		prices[i] = 1.0
	}
	prices[20] = 0.8
	s := BuildSeries(1, "Ore", pointsAt(6*time.Hour, prices...))

	opp, ok := s.Signal()
	if !ok {
		t.Fatal("signal expected")
	}
	if opp.CurrentPrice != 0.8 {
		t.Errorf("current price = %v, want 0.8", opp.CurrentPrice)
	}
	if math.Abs(opp.Avg3d-1.0) > 1e-6 {
		t.Errorf("avg3d = %v, want 1.0", opp.Avg3d)
	}
	if math.Abs(opp.PctDiff+20) > 1e-6 {
		t.Errorf("pct diff = %v, want -20", opp.PctDiff)
	}

	st := NewStore()
	st.Add(s)
	buys, sells := st.Opportunities(DefaultSignalThresholdPct)
	if len(buys) != 1 || len(sells) != 0 {
		t.Fatalf("opportunities = %d buys / %d sells, want 1 / 0", len(buys), len(sells))
	}
	if buys[0].Name != "Ore" {
		t.Errorf("buy opportunity = %q, want Ore", buys[0].Name)
	}
}

func TestSignal_NoPrecedingWindow(t *testing.T) {
	// A single observation has nothing to compare against.
	s := BuildSeries(1, "Ore", pointsAt(6*time.Hour, 1.0))
	if _, ok := s.Signal(); ok {
		t.Error("signal with no preceding window should be absent")
	}

	if _, ok := (&Series{ItemID: 1, Name: "Ore"}).Signal(); ok {
		t.Error("signal on empty series should be absent")
	}
}

func TestSignal_ExcludesLatestFromBaseline(t *testing.T) {
	// Baseline must not include the latest observation itself, or every
	// deviation would be dampened.
	s := BuildSeries(1, "Ore", pointsAt(6*time.Hour, 1.0, 1.0, 2.0))
	opp, ok := s.Signal()
	if !ok {
		t.Fatal("signal expected")
	}
	if math.Abs(opp.Avg3d-1.0) > 1e-6 {
		t.Errorf("avg3d = %v, want 1.0 (latest excluded)", opp.Avg3d)
	}
	if math.Abs(opp.PctDiff-100) > 1e-6 {
		t.Errorf("pct diff = %v, want +100", opp.PctDiff)
	}
}

func TestOpportunities_ThresholdIsInclusive(t *testing.T) {
	// Exactly -5% deviation: 1.0 baseline, 0.95 latest.
	s := BuildSeries(1, "Ore", pointsAt(6*time.Hour, 1.0, 1.0, 1.0, 0.95))
	st := NewStore()
	st.Add(s)

	buys, _ := st.Opportunities(5)
	if len(buys) != 1 {
		t.Errorf("deviation exactly at threshold should qualify, got %d buys", len(buys))
	}

	// Just inside the band produces nothing.
	s2 := BuildSeries(2, "Dust", pointsAt(6*time.Hour, 1.0, 1.0, 1.0, 0.96))
	st2 := NewStore()
	st2.Add(s2)
	buys2, sells2 := st2.Opportunities(5)
	if len(buys2) != 0 || len(sells2) != 0 {
		t.Errorf("within-band item should produce no opportunity, got %d/%d", len(buys2), len(sells2))
	}
}

func TestOpportunities_Sorting(t *testing.T) {
	st := NewStore()
	// Buy candidates: Ore drops 0.2g, Gem drops 2g. Gem first.
	st.Add(BuildSeries(1, "Ore", pointsAt(6*time.Hour, 1.0, 1.0, 1.0, 0.8)))
	st.Add(BuildSeries(2, "Gem", pointsAt(6*time.Hour, 10.0, 10.0, 10.0, 8.0)))
	// Sell candidates: Dust up 0.5g, Bar up 3g. Bar first.
	st.Add(BuildSeries(3, "Dust", pointsAt(6*time.Hour, 1.0, 1.0, 1.0, 1.5)))
	st.Add(BuildSeries(4, "Bar", pointsAt(6*time.Hour, 10.0, 10.0, 10.0, 13.0)))

	buys, sells := st.Opportunities(5)
	if len(buys) != 2 || buys[0].Name != "Gem" || buys[1].Name != "Ore" {
		t.Errorf("buys = %+v, want Gem then Ore by absolute discount", buys)
	}
	if len(sells) != 2 || sells[0].Name != "Bar" || sells[1].Name != "Dust" {
		t.Errorf("sells = %+v, want Bar then Dust by premium", sells)
	}
}
