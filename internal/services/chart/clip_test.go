package chart

import (
	"testing"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

func TestClipSince_Rebaseline(t *testing.T) {
	points := returnSeries(0, 2, 5, 4, 8)
	for i := range points {
		points[i].Benchmark = models.Float64Ptr(float64(i))
	}
	// Clip from the third point's date.
	since := points[2].Date

	out := ClipSince(points, since)

	if len(out) != 3 {
		t.Fatalf("got %d points, want 3", len(out))
	}
	if *out[0].Portfolio != 0 || *out[0].Benchmark != 0 {
		t.Errorf("first retained point not re-baselined: portfolio=%v benchmark=%v",
			*out[0].Portfolio, *out[0].Benchmark)
	}
	if *out[1].Portfolio != -1 { // 4 - 5
		t.Errorf("second point = %v, want -1", *out[1].Portfolio)
	}
	if *out[2].Portfolio != 3 { // 8 - 5
		t.Errorf("third point = %v, want 3", *out[2].Portfolio)
	}
	if *out[2].Benchmark != 2 { // 4 - 2, re-baselined independently
		t.Errorf("third benchmark = %v, want 2", *out[2].Benchmark)
	}
}

func TestClipSince_ZeroCreatedAt(t *testing.T) {
	points := returnSeries(0, 2, 5)
	out := ClipSince(points, time.Time{})
	if len(out) != 3 {
		t.Errorf("zero createdAt should leave the series unchanged, got %d points", len(out))
	}
}

func TestClipSince_AllBeforeStart(t *testing.T) {
	points := returnSeries(0, 2, 5)
	out := ClipSince(points, points[2].Date.AddDate(0, 1, 0))
	if out != nil {
		t.Errorf("expected nil when no points survive, got %d", len(out))
	}
}

func TestDrawdown(t *testing.T) {
	// Peak at 10%, trough at -10%: drawdown from index 110 to 90 is
	// (90/110 - 1) * 100 = -18.18%.
	points := returnSeries(0, 10, -10, 0, 20)

	dd := Drawdown(points)

	if *dd[0].Portfolio != 0 {
		t.Errorf("first drawdown = %v, want 0", *dd[0].Portfolio)
	}
	if !approxEqual(*dd[2].Portfolio, -18.18, 0.01) {
		t.Errorf("trough drawdown = %v, want -18.18", *dd[2].Portfolio)
	}
	// New all-time high resets drawdown to 0.
	if *dd[4].Portfolio != 0 {
		t.Errorf("new-high drawdown = %v, want 0", *dd[4].Portfolio)
	}
	for i, p := range dd {
		if *p.Portfolio > 0 {
			t.Errorf("drawdown %d is positive: %v", i, *p.Portfolio)
		}
	}
}

func TestReturn(t *testing.T) {
	src := fixedSource{
		"AAPL": pricePoints(100, 105, 95, 110),
	}

	// 3 trading days -> 4-point history, (110/100 - 1) * 100 = 10%.
	got := Return(src, "AAPL", 3)
	if !approxEqual(got, 10, 1e-9) {
		t.Errorf("Return = %v, want 10", got)
	}
}

func TestPortfolioReturn(t *testing.T) {
	src := fixedSource{
		"AAPL": pricePoints(100, 110), // +10%
		"MSFT": pricePoints(200, 190), // -5%
	}
	holdings := []models.Holding{
		{Ticker: "AAPL", WeightPercent: 60},
		{Ticker: "MSFT", WeightPercent: 40},
	}

	// 0.6*10 + 0.4*(-5) = 4
	got := PortfolioReturn(src, holdings, 1)
	if !approxEqual(got, 4, 1e-9) {
		t.Errorf("PortfolioReturn = %v, want 4", got)
	}
}
