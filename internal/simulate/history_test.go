package simulate

import (
	"math"
	"testing"
	"time"
)

func TestGenerateHistory_Deterministic(t *testing.T) {
	asOf := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)

	a := GenerateHistoryAsOf("AAPL", 252, asOf)
	b := GenerateHistoryAsOf("AAPL", 252, asOf)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateHistory_DifferentTickersDiffer(t *testing.T) {
	asOf := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	a := GenerateHistoryAsOf("AAPL", 63, asOf)
	b := GenerateHistoryAsOf("MSFT", 63, asOf)

	same := true
	for i := range a {
		// Compare shapes, not absolute prices (anchors differ anyway).
		ra := a[i].Price / a[len(a)-1].Price
		rb := b[i].Price / b[len(b)-1].Price
		if math.Abs(ra-rb) > 1e-9 {
			same = false
			break
		}
	}
	if same {
		t.Error("AAPL and MSFT produced identical return shapes")
	}
}

func TestGenerateHistory_EndpointAnchor(t *testing.T) {
	asOf := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		ticker string
		days   int
		want   float64
	}{
		{"AAPL", 21, 227.52},
		{"SPY", 252, 571.04},
		{"VOO", 1095, 525.08},
		{"ZZZZ", 63, DefaultPrice}, // unknown ticker falls back to 100
	}

	for _, tc := range cases {
		points := GenerateHistoryAsOf(tc.ticker, tc.days, asOf)
		if len(points) != tc.days {
			t.Errorf("%s: got %d points, want %d", tc.ticker, len(points), tc.days)
		}
		last := points[len(points)-1].Price
		if math.Abs(last-tc.want) > 1e-9 {
			t.Errorf("%s: last price = %.4f, want %.4f", tc.ticker, last, tc.want)
		}
	}
}

func TestGenerateHistory_TradingDaysOnly(t *testing.T) {
	// asOf on a Sunday: the last point must land on the preceding Friday.
	asOf := time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)

	points := GenerateHistoryAsOf("MSFT", 126, asOf)

	if len(points) != 126 {
		t.Fatalf("got %d points, want 126", len(points))
	}

	last := points[len(points)-1].Date
	if last.Weekday() != time.Friday {
		t.Errorf("last date %s is %s, want Friday", last.Format("2006-01-02"), last.Weekday())
	}

	for i, p := range points {
		if wd := p.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("point %d on weekend: %s (%s)", i, p.Date.Format("2006-01-02"), wd)
		}
		if i > 0 && !points[i-1].Date.Before(p.Date) {
			t.Errorf("dates not strictly increasing at %d: %s >= %s",
				i, points[i-1].Date.Format("2006-01-02"), p.Date.Format("2006-01-02"))
		}
	}
}

func TestGenerateHistory_PositivePrices(t *testing.T) {
	asOf := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	for _, ticker := range []string{"AAPL", "BND", "TSLA", "UNKNOWN"} {
		for _, p := range GenerateHistoryAsOf(ticker, 756, asOf) {
			if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
				t.Fatalf("%s: degenerate price %v on %s", ticker, p.Price, p.Date)
			}
		}
	}
}

func TestGenerateHistory_MinDaysFloor(t *testing.T) {
	asOf := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	points := GenerateHistoryAsOf("AAPL", 0, asOf)
	if len(points) != MinDays {
		t.Errorf("numDays=0 produced %d points, want %d", len(points), MinDays)
	}
}

func TestLookup_UnknownTicker(t *testing.T) {
	inst := Lookup("NOPE")
	if inst.LastPrice != DefaultPrice {
		t.Errorf("unknown ticker price = %v, want %v", inst.LastPrice, DefaultPrice)
	}
	if inst.Type != "Stock" {
		t.Errorf("unknown ticker type = %v, want Stock", inst.Type)
	}
}
