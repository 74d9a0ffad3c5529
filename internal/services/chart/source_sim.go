package chart

import (
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/simulate"
)

// SimulatedSource satisfies PriceSource with the deterministic simulator.
type SimulatedSource struct{}

// History returns the simulated price history for a ticker.
func (SimulatedSource) History(ticker string, days int) []models.PricePoint {
	return simulate.GenerateHistory(ticker, days)
}

var _ PriceSource = SimulatedSource{}
