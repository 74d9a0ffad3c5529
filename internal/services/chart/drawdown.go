package chart

import "github.com/bobmcallan/folio/internal/models"

// Drawdown computes each day's percent decline from the running peak of a
// normalized return series, separately for the portfolio and benchmark
// curves. Values are always <= 0 and the first point of each curve is 0.
func Drawdown(points []models.ChartPoint) []models.DrawdownPoint {
	out := make([]models.DrawdownPoint, len(points))

	portPeak := 0.0
	benchPeak := 0.0
	for i, p := range points {
		out[i].Date = p.Date
		if p.Portfolio != nil {
			// Work in index space: a return of r% is index 100+r.
			idx := 100 + *p.Portfolio
			if portPeak == 0 || idx > portPeak {
				portPeak = idx
			}
			out[i].Portfolio = models.Float64Ptr(round2((idx/portPeak - 1) * 100))
		}
		if p.Benchmark != nil {
			idx := 100 + *p.Benchmark
			if benchPeak == 0 || idx > benchPeak {
				benchPeak = idx
			}
			out[i].Benchmark = models.Float64Ptr(round2((idx/benchPeak - 1) * 100))
		}
	}
	return out
}
