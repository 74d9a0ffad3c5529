package chart

import (
	"math"

	"github.com/bobmcallan/folio/internal/models"
)

// PriceSource supplies daily price history for a ticker, oldest to newest,
// with exactly the requested number of trading-day points.
type PriceSource interface {
	History(ticker string, days int) []models.PricePoint
}

// Source tags where a series' points came from.
type Source string

const (
	SourceLive      Source = "live"
	SourceSimulated Source = "simulated"
)

// Series is a tagged normalized return series.
type Series struct {
	Points []models.ChartPoint
	Source Source
}

// Resolve picks the live series when the live call succeeded and returned
// points, and falls back to the simulated series otherwise. Live-path
// failures never propagate; the fallback is recorded in the Source tag.
func Resolve(live []models.ChartPoint, liveErr error, simulated []models.ChartPoint) Series {
	if liveErr == nil && len(live) > 0 {
		return Series{Points: live, Source: SourceLive}
	}
	return Series{Points: simulated, Source: SourceSimulated}
}

// PortfolioSeries computes the normalized percent-return series for a set of
// weighted holdings against an optional benchmark, over days trading days.
// The portfolio curve starts at 0%: each holding's history is indexed to its
// first price, weighted by weight/100, summed to an index seeded at 100, and
// reported as (index - 100) rounded to 2 decimals. The benchmark curve is
// normalized independently the same way.
//
// With no holdings the result is the benchmark curve alone (no portfolio
// values), or nil when there is no benchmark either.
func PortfolioSeries(src PriceSource, holdings []models.Holding, benchmark string, days int) []models.ChartPoint {
	if days < 2 {
		days = 2
	}

	var benchHistory []models.PricePoint
	if benchmark != "" {
		benchHistory = src.History(benchmark, days)
	}

	if len(holdings) == 0 {
		if len(benchHistory) == 0 {
			return nil
		}
		points := make([]models.ChartPoint, len(benchHistory))
		base := benchHistory[0].Price
		for i, p := range benchHistory {
			points[i] = models.ChartPoint{
				Date:      p.Date,
				Benchmark: models.Float64Ptr(round2((p.Price/base - 1) * 100)),
			}
		}
		return points
	}

	histories := make([][]models.PricePoint, len(holdings))
	n := days
	for i, h := range holdings {
		histories[i] = src.History(h.Ticker, days)
		if len(histories[i]) < n {
			n = len(histories[i])
		}
	}
	if benchmark != "" && len(benchHistory) < n {
		n = len(benchHistory)
	}
	if n < 2 {
		return nil
	}

	points := make([]models.ChartPoint, n)
	for i := 0; i < n; i++ {
		// Weighted index value seeded at 100 on day one.
		value := 0.0
		for j, h := range holdings {
			base := histories[j][0].Price
			if base <= 0 {
				continue
			}
			value += (h.WeightPercent / 100) * (histories[j][i].Price / base) * 100
		}

		points[i] = models.ChartPoint{
			Date:      histories[0][i].Date,
			Portfolio: models.Float64Ptr(round2(value - 100)),
		}
		if len(benchHistory) > 0 && benchHistory[0].Price > 0 {
			points[i].Benchmark = models.Float64Ptr(round2((benchHistory[i].Price/benchHistory[0].Price - 1) * 100))
		}
	}
	return points
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
