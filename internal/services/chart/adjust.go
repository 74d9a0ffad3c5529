package chart

import (
	"math"

	"github.com/bobmcallan/folio/internal/models"
)

// AdjustParams carries the cash-sleeve and dividend-drag rates used by
// ApplyCashAndDrip. Both are annualized fractions.
type AdjustParams struct {
	CashYieldRate    float64 // yield earned on the uninvested cash sleeve
	DividendDragRate float64 // return given up when DRIP is disabled
}

// DefaultAdjustParams returns the standard approximation constants:
// 5% p.a. cash yield and 1.5% p.a. dividend drag.
func DefaultAdjustParams() AdjustParams {
	return AdjustParams{CashYieldRate: 0.05, DividendDragRate: 0.015}
}

// ApplyCashAndDrip transforms an already-computed percent-return series for
// a cash allocation and DRIP setting. The invested portion of each return is
// scaled by (100-cashPercent)/100 and the cash sleeve earns the compounded
// daily cash yield; when DRIP is off, a linear dividend-drag approximation
// prorated by elapsed trading days is subtracted. With cashPercent 0 and
// DRIP on the series is returned unchanged.
//
// Only the portfolio curve is adjusted; the benchmark is left as-is.
func ApplyCashAndDrip(points []models.ChartPoint, cashPercent float64, drip bool, params AdjustParams) []models.ChartPoint {
	if cashPercent == 0 && drip {
		return points
	}

	dailyCashRate := params.CashYieldRate / 252
	investedFrac := (100 - cashPercent) / 100
	cashFrac := cashPercent / 100

	out := make([]models.ChartPoint, len(points))
	for i, p := range points {
		out[i] = p
		if p.Portfolio == nil {
			continue
		}

		adjusted := *p.Portfolio * investedFrac
		adjusted += (math.Pow(1+dailyCashRate, float64(i)) - 1) * 100 * cashFrac
		if !drip {
			adjusted -= params.DividendDragRate * 100 * float64(i) / 252
		}
		out[i].Portfolio = models.Float64Ptr(round2(adjusted))
	}
	return out
}
