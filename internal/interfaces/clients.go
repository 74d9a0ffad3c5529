package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// MarketDataClient provides access to the optional live market-data API.
// Every method must be safe to skip entirely: when IsConfigured returns
// false, or any call fails or returns empty, callers fall back to the
// deterministic simulator and proceed.
type MarketDataClient interface {
	// IsConfigured reports whether the client has an API key.
	IsConfigured() bool

	// GetQuote retrieves a real-time quote for a ticker.
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)

	// GetCandles retrieves daily close prices for the most recent
	// days trading days, ordered oldest to newest.
	GetCandles(ctx context.Context, ticker string, days int) ([]models.PricePoint, error)

	// SearchInstruments searches tradeable instruments by ticker or name.
	SearchInstruments(ctx context.Context, query string) ([]models.Instrument, error)
}
