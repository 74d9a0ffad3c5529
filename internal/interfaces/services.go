package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// ChartData is a tagged performance-series result. Source records whether
// the points came from live market candles or the deterministic simulator.
type ChartData struct {
	Points   []models.ChartPoint    `json:"points"`
	Drawdown []models.DrawdownPoint `json:"drawdown,omitempty"`
	Source   string                 `json:"source"` // "live" or "simulated"
}

// PortfolioValuation is the point-in-time valuation of a portfolio.
type PortfolioValuation struct {
	CurrentValue   float64            `json:"current_value"`
	DriftedWeights map[string]float64 `json:"drifted_weights"`
	NeedsRebalance bool               `json:"needs_rebalance"`
	Source         string             `json:"source"` // "live" or "simulated"
}

// PortfolioService manages the portfolio lifecycle and derived computations.
type PortfolioService interface {
	Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)
	Get(ctx context.Context, owner, id string) (*models.Portfolio, error)
	List(ctx context.Context, owner string) ([]*models.PortfolioSummary, error)
	Save(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)
	Duplicate(ctx context.Context, owner, id string) (*models.Portfolio, error)
	Delete(ctx context.Context, owner string, ids ...string) error
	Rebalance(ctx context.Context, owner, id string) (*models.Portfolio, error)

	ChartData(ctx context.Context, p *models.Portfolio, rangeLabel models.RangeLabel) (*ChartData, error)
	Value(ctx context.Context, p *models.Portfolio) (*PortfolioValuation, error)
}
