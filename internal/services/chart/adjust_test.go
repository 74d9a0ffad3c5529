package chart

import (
	"math"
	"testing"

	"github.com/bobmcallan/folio/internal/models"
)

func returnSeries(values ...float64) []models.ChartPoint {
	dates := pricePoints(make([]float64, len(values))...)
	points := make([]models.ChartPoint, len(values))
	for i, v := range values {
		points[i] = models.ChartPoint{Date: dates[i].Date, Portfolio: models.Float64Ptr(v)}
	}
	return points
}

func TestApplyCashAndDrip_Identity(t *testing.T) {
	series := returnSeries(0, 1.5, -2.3, 4.1)

	out := ApplyCashAndDrip(series, 0, true, DefaultAdjustParams())

	if len(out) != len(series) {
		t.Fatalf("length changed: %d -> %d", len(series), len(out))
	}
	for i := range series {
		if *out[i].Portfolio != *series[i].Portfolio {
			t.Errorf("point %d changed: %v -> %v", i, *series[i].Portfolio, *out[i].Portfolio)
		}
	}
}

func TestApplyCashAndDrip_AllCash(t *testing.T) {
	// 100% cash: the equity return is irrelevant, only the compounded
	// cash yield remains.
	series := returnSeries(0, 10, -20, 30)
	params := DefaultAdjustParams()

	out := ApplyCashAndDrip(series, 100, true, params)

	daily := params.CashYieldRate / 252
	for i := range out {
		want := math.Round((math.Pow(1+daily, float64(i))-1)*100*100) / 100
		if !approxEqual(*out[i].Portfolio, want, 1e-9) {
			t.Errorf("point %d = %v, want %v", i, *out[i].Portfolio, want)
		}
	}
}

func TestApplyCashAndDrip_DividendDrag(t *testing.T) {
	// DRIP off, no cash: linear drag of 1.5% p.a. prorated by elapsed days.
	series := returnSeries(0, 1, 2, 3)
	params := DefaultAdjustParams()

	out := ApplyCashAndDrip(series, 0, false, params)

	for i := range out {
		want := math.Round((float64(i)-params.DividendDragRate*100*float64(i)/252)*100) / 100
		if !approxEqual(*out[i].Portfolio, want, 1e-9) {
			t.Errorf("point %d = %v, want %v", i, *out[i].Portfolio, want)
		}
	}
}

func TestApplyCashAndDrip_BenchmarkUntouched(t *testing.T) {
	points := returnSeries(0, 5)
	points[1].Benchmark = models.Float64Ptr(3.3)

	out := ApplyCashAndDrip(points, 50, false, DefaultAdjustParams())

	if *out[1].Benchmark != 3.3 {
		t.Errorf("benchmark changed: %v", *out[1].Benchmark)
	}
	if *out[1].Portfolio == *points[1].Portfolio {
		t.Error("portfolio value should have been adjusted")
	}
}
