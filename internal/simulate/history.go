package simulate

import (
	"math"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// Daily log-return parameters for the synthetic random walk. ETFs get the
// lower volatility tier; drift is a small shared upward bias.
const (
	stockVolatility = 0.018
	etfVolatility   = 0.009
	dailyDrift      = 0.0003
)

// MinDays is the smallest usable history length (one return needs two points).
const MinDays = 2

// GenerateHistory produces a reproducible synthetic daily price series for a
// ticker, ordered oldest to newest, with exactly numDays trading-day points.
// The last point's price always equals the instrument's reference price.
func GenerateHistory(ticker string, numDays int) []models.PricePoint {
	return GenerateHistoryAsOf(ticker, numDays, time.Now())
}

// GenerateHistoryAsOf is GenerateHistory with an explicit end date, the last
// trading day on or before asOf.
func GenerateHistoryAsOf(ticker string, numDays int, asOf time.Time) []models.PricePoint {
	if numDays < MinDays {
		numDays = MinDays
	}

	inst := Lookup(ticker)
	volatility := stockVolatility
	if inst.Type == models.InstrumentTypeETF {
		volatility = etfVolatility
	}

	r := newRNG(hashTicker(ticker))

	// Daily log-return samples via Box-Muller. u1 is clamped away from
	// zero to avoid the log singularity.
	returns := make([]float64, numDays-1)
	for i := range returns {
		u1 := r.Float64()
		if u1 < 1e-12 {
			u1 = 1e-12
		}
		u2 := r.Float64()
		returns[i] = dailyDrift + volatility*math.Sqrt(-2*math.Log(u1))*math.Cos(2*math.Pi*u2)
	}

	// Reconstruct the price path backward from the reference price so the
	// series always ends exactly at it, whatever the draws were.
	prices := make([]float64, numDays)
	prices[numDays-1] = inst.LastPrice
	for i := numDays - 2; i >= 0; i-- {
		prices[i] = prices[i+1] / (1 + returns[i])
	}

	dates := tradingDatesEndingAt(asOf, numDays)

	points := make([]models.PricePoint, numDays)
	for i := range points {
		points[i] = models.PricePoint{Date: dates[i], Price: prices[i]}
	}
	return points
}

// tradingDatesEndingAt walks backward from asOf, skipping Saturdays and
// Sundays, until n trading dates are collected, and returns them oldest
// first. Dates are truncated to midnight UTC.
func tradingDatesEndingAt(asOf time.Time, n int) []time.Time {
	dates := make([]time.Time, n)
	d := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, -1)
		}
		dates[i] = d
		d = d.AddDate(0, 0, -1)
	}
	return dates
}
