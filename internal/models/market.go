package models

import "time"

// PricePoint is one day of price history for an instrument.
// Dates are trading days only (weekends excluded). Never persisted;
// always derived on demand from the simulator or the live-data client.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// ChartPoint is one day of a normalized percent-return series.
// Portfolio and Benchmark are nil when the corresponding curve is absent.
type ChartPoint struct {
	Date      time.Time `json:"date"`
	Portfolio *float64  `json:"portfolio,omitempty"`
	Benchmark *float64  `json:"benchmark,omitempty"`
}

// DrawdownPoint is one day of percent decline from the running peak.
// Values are always <= 0; the first point of a series is 0.
type DrawdownPoint struct {
	Date      time.Time `json:"date"`
	Portfolio *float64  `json:"portfolio,omitempty"`
	Benchmark *float64  `json:"benchmark,omitempty"`
}

// Quote is a point-in-time price from the live market-data collaborator.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change_percent"`
	PrevClose     float64   `json:"prev_close"`
	Timestamp     time.Time `json:"timestamp"`
}

// RangeLabel names a chart range. Labels map to trading-day counts in the
// chart engine; "Since" derives its count from the portfolio age.
type RangeLabel string

const (
	Range1M    RangeLabel = "1M"
	Range3M    RangeLabel = "3M"
	Range6M    RangeLabel = "6M"
	Range1Y    RangeLabel = "1Y"
	Range2Y    RangeLabel = "2Y"
	RangeMax   RangeLabel = "Max"
	RangeSince RangeLabel = "Since"
)

// ValidRange reports whether label is a recognised range label.
func ValidRange(label RangeLabel) bool {
	switch label {
	case Range1M, Range3M, Range6M, Range1Y, Range2Y, RangeMax, RangeSince:
		return true
	}
	return false
}
