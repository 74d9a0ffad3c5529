// Package models defines data structures for Folio
package models

import (
	"strings"
	"time"
)

// InstrumentType classifies an instrument for simulation volatility tiers.
type InstrumentType string

const (
	InstrumentTypeStock InstrumentType = "Stock"
	InstrumentTypeETF   InstrumentType = "ETF"
)

// Instrument is immutable reference data for a tradeable security.
type Instrument struct {
	Ticker        string         `json:"ticker"`
	Name          string         `json:"name"`
	Type          InstrumentType `json:"type"`
	Exchange      string         `json:"exchange"`
	LastPrice     float64        `json:"last_price"`
	ExpenseRatio  float64        `json:"expense_ratio,omitempty"`
	DividendYield float64        `json:"dividend_yield,omitempty"`
}

// HoldingCategory is a free-form classification tag used for reporting only.
type HoldingCategory string

const (
	CategoryCore      HoldingCategory = "Core"
	CategoryTilt      HoldingCategory = "Tilt"
	CategorySatellite HoldingCategory = "Satellite"
)

// Holding represents one instrument's target allocation within a portfolio.
// EntryPrice is the drift baseline: the price captured when the holding was
// added or last rebalanced.
type Holding struct {
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	Type          InstrumentType  `json:"type"`
	LastPrice     float64         `json:"last_price"`
	EntryPrice    float64         `json:"entry_price"`
	WeightPercent float64         `json:"weight_percent"`
	Category      HoldingCategory `json:"category,omitempty"`
}

// Portfolio represents a named collection of weighted holdings.
// Holdings order is insertion order and carries no meaning. Weights are
// independent scalars and are not required to sum to 100.
type Portfolio struct {
	ID            string        `json:"id"`
	Owner         string        `json:"owner"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Benchmark     string        `json:"benchmark,omitempty"`
	Holdings      []Holding     `json:"holdings"`
	DRIPEnabled   bool          `json:"drip_enabled"`
	CashPercent   float64       `json:"cash_percent"`
	StartingValue float64       `json:"starting_value"`
	CreatedAt     time.Time     `json:"created_at,omitempty"` // zero means no fixed start; all history is simulated
	UpdatedAt     time.Time     `json:"updated_at"`
	WeightHistory []WeightEvent `json:"weight_history"`
}

// Holding returns the holding for a ticker, or nil if absent.
// Ticker comparison is case-insensitive; tickers are unique per portfolio.
func (p *Portfolio) Holding(ticker string) *Holding {
	for i := range p.Holdings {
		if strings.EqualFold(p.Holdings[i].Ticker, ticker) {
			return &p.Holdings[i]
		}
	}
	return nil
}

// TotalTargetWeight returns the sum of target weights across holdings.
func (p *Portfolio) TotalTargetWeight() float64 {
	total := 0.0
	for _, h := range p.Holdings {
		total += h.WeightPercent
	}
	return total
}

// Tickers returns the holding tickers in insertion order.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, len(p.Holdings))
	for i, h := range p.Holdings {
		tickers[i] = h.Ticker
	}
	return tickers
}

// WeightEventType classifies a weight-history event.
type WeightEventType string

const (
	EventCreated        WeightEventType = "created"
	EventAdjustment     WeightEventType = "adjustment"
	EventHoldingAdded   WeightEventType = "holding_added"
	EventHoldingRemoved WeightEventType = "holding_removed"
	EventRebalance      WeightEventType = "rebalance"
)

// WeightChange records one holding's weight transition within an event.
// A nil From means the holding was added; a nil To means it was removed.
type WeightChange struct {
	Ticker string   `json:"ticker"`
	From   *float64 `json:"from"`
	To     *float64 `json:"to"`
}

// WeightEvent is one entry in a portfolio's append-only weight history.
// Events are never mutated or reordered after creation.
type WeightEvent struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      WeightEventType `json:"type"`
	Changes   []WeightChange  `json:"changes"`
}

// PortfolioSummary is the list-view projection of a portfolio.
// Computed on response, not persisted.
type PortfolioSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Benchmark      string    `json:"benchmark,omitempty"`
	HoldingCount   int       `json:"holding_count"`
	TotalWeight    float64   `json:"total_weight"`
	CurrentValue   float64   `json:"current_value"`
	NeedsRebalance bool      `json:"needs_rebalance"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Float64Ptr returns a pointer to v. Helper for WeightChange construction.
func Float64Ptr(v float64) *float64 {
	return &v
}
