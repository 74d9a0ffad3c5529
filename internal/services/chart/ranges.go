// Package chart computes normalized percent-return series for portfolios.
package chart

import (
	"math"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// MaxDays is the trading-day cap for the "Max" range and the longest
// history the engine will request.
const MaxDays = 1095

// tradingDaysFor converts calendar days to trading days at 252/365,
// rounding up. Integer arithmetic keeps exact multiples exact (365
// calendar days is 252 trading days, not 253 from float error).
func tradingDaysFor(calendarDays int) int {
	return (calendarDays*252 + 364) / 365
}

// TradingDays maps a range label to a trading-day count. "Since" derives its
// count from the portfolio age at the calendar-to-trading-day ratio, always
// rounded up; a zero createdAt falls back to the full cap. Minimum is 2.
func TradingDays(label models.RangeLabel, createdAt time.Time, now time.Time) int {
	var days int
	switch label {
	case models.Range1M:
		days = 21
	case models.Range3M:
		days = 63
	case models.Range6M:
		days = 126
	case models.Range1Y:
		days = 252
	case models.Range2Y:
		days = tradingDaysFor(730)
	case models.RangeMax:
		days = MaxDays
	case models.RangeSince:
		if createdAt.IsZero() {
			days = MaxDays
			break
		}
		ageDays := int(math.Ceil(now.Sub(createdAt).Hours() / 24))
		days = tradingDaysFor(ageDays)
	default:
		days = 21
	}

	if days < 2 {
		days = 2
	}
	if days > MaxDays {
		days = MaxDays
	}
	return days
}
