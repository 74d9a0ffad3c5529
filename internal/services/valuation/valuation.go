// Package valuation computes drifted weights and portfolio value from
// target weights, entry prices, and current prices.
package valuation

import (
	"math"

	"github.com/bobmcallan/folio/internal/models"
)

// RebalanceThreshold is the drift, in percentage points, at which a
// portfolio is flagged as needing a rebalance.
const RebalanceThreshold = 0.5

// Ratios returns currentPrice/entryPrice per ticker. The current price is
// the live quote when present, else the stored last price; the entry price
// defaults to the last price when absent. Invalid entry prices (<= 0) get
// an identity ratio so downstream normalization never divides by zero.
func Ratios(holdings []models.Holding, livePrices map[string]float64) map[string]float64 {
	ratios := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		current := h.LastPrice
		if live, ok := livePrices[h.Ticker]; ok && live > 0 {
			current = live
		}
		entry := h.EntryPrice
		if entry <= 0 {
			entry = h.LastPrice
		}
		if entry <= 0 || current <= 0 {
			ratios[h.Ticker] = 1
			continue
		}
		ratios[h.Ticker] = current / entry
	}
	return ratios
}

// DriftedWeights renormalizes target weights by relative price performance
// since entry: what each holding's share of the portfolio actually is today.
// With zero total target weight the target weights are returned unchanged.
func DriftedWeights(holdings []models.Holding, ratios map[string]float64) map[string]float64 {
	total := 0.0
	for _, h := range holdings {
		total += (h.WeightPercent / 100) * ratio(ratios, h.Ticker)
	}

	drifted := make(map[string]float64, len(holdings))
	if total <= 0 {
		for _, h := range holdings {
			drifted[h.Ticker] = h.WeightPercent
		}
		return drifted
	}

	for _, h := range holdings {
		drifted[h.Ticker] = (h.WeightPercent / 100) * ratio(ratios, h.Ticker) / total * 100
	}
	return drifted
}

// NeedsRebalance reports whether any holding's drifted weight departs from
// its target by at least RebalanceThreshold percentage points.
func NeedsRebalance(holdings []models.Holding, drifted map[string]float64) bool {
	for _, h := range holdings {
		if math.Abs(drifted[h.Ticker]-h.WeightPercent) >= RebalanceThreshold {
			return true
		}
	}
	return false
}

// Value estimates the current dollar value of a portfolio: the invested
// growth factor blended with a flat cash sleeve, applied to the starting
// value. An empty holdings list leaves the starting value unchanged.
func Value(p *models.Portfolio, ratios map[string]float64) float64 {
	if len(p.Holdings) == 0 {
		return p.StartingValue
	}

	growth := 0.0
	for _, h := range p.Holdings {
		growth += (h.WeightPercent / 100) * ratio(ratios, h.Ticker)
	}

	cashFrac := p.CashPercent / 100
	return p.StartingValue * (growth*(1-cashFrac) + cashFrac)
}

func ratio(ratios map[string]float64, ticker string) float64 {
	if r, ok := ratios[ticker]; ok && r > 0 {
		return r
	}
	return 1
}
