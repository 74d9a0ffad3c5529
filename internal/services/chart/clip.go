package chart

import (
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// ClipSince filters a series to points on or after the portfolio's start
// date and re-baselines so the first retained point is exactly 0%. The
// portfolio and benchmark curves are re-baselined independently. A zero
// start date returns the series unchanged.
func ClipSince(points []models.ChartPoint, createdAt time.Time) []models.ChartPoint {
	if createdAt.IsZero() || len(points) == 0 {
		return points
	}

	start := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC)

	first := -1
	for i, p := range points {
		if !p.Date.Before(start) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}

	var portBase, benchBase float64
	if points[first].Portfolio != nil {
		portBase = *points[first].Portfolio
	}
	if points[first].Benchmark != nil {
		benchBase = *points[first].Benchmark
	}

	out := make([]models.ChartPoint, 0, len(points)-first)
	for _, p := range points[first:] {
		clipped := models.ChartPoint{Date: p.Date}
		if p.Portfolio != nil {
			clipped.Portfolio = models.Float64Ptr(round2(*p.Portfolio - portBase))
		}
		if p.Benchmark != nil {
			clipped.Benchmark = models.Float64Ptr(round2(*p.Benchmark - benchBase))
		}
		out = append(out, clipped)
	}
	return out
}
