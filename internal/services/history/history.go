// Package history maintains the append-only weight-event log: it diffs a
// portfolio's weight vector against its previously persisted state,
// classifies the result, and performs the rebalance operation.
package history

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/valuation"
)

// changeThreshold is the smallest weight delta, in percentage points,
// recorded as a change.
const changeThreshold = 0.01

// Created builds the first-ever event for a portfolio, listing every
// holding as newly added. Returned even with zero holdings.
func Created(holdings []models.Holding, now time.Time) *models.WeightEvent {
	changes := make([]models.WeightChange, len(holdings))
	for i, h := range holdings {
		changes[i] = models.WeightChange{
			Ticker: h.Ticker,
			To:     models.Float64Ptr(h.WeightPercent),
		}
	}
	return newEvent(models.EventCreated, changes, now)
}

// Diff compares a portfolio's previously persisted holdings against its new
// holdings and returns the weight event to append, or nil when nothing
// changed (a no-op save).
func Diff(prev, next []models.Holding, now time.Time) *models.WeightEvent {
	prevWeights := weightsByTicker(prev)
	nextWeights := weightsByTicker(next)

	var changes []models.WeightChange

	// Additions and adjustments, in the new holdings' insertion order.
	for _, h := range next {
		old, existed := prevWeights[h.Ticker]
		if !existed {
			changes = append(changes, models.WeightChange{
				Ticker: h.Ticker,
				To:     models.Float64Ptr(h.WeightPercent),
			})
			continue
		}
		if math.Abs(old-h.WeightPercent) >= changeThreshold {
			changes = append(changes, models.WeightChange{
				Ticker: h.Ticker,
				From:   models.Float64Ptr(old),
				To:     models.Float64Ptr(h.WeightPercent),
			})
		}
	}

	// Removals.
	for _, h := range prev {
		if _, kept := nextWeights[h.Ticker]; !kept {
			changes = append(changes, models.WeightChange{
				Ticker: h.Ticker,
				From:   models.Float64Ptr(h.WeightPercent),
			})
		}
	}

	if len(changes) == 0 {
		return nil
	}
	return newEvent(classify(changes), changes, now)
}

// Rebalance resets each holding's entry price to its current price (live
// when available, else the stored last price), leaving target weights
// unchanged, and returns the rewritten holdings with a rebalance event that
// records each holding's pre-rebalance drifted weight.
func Rebalance(holdings []models.Holding, livePrices map[string]float64, now time.Time) ([]models.Holding, *models.WeightEvent) {
	drifted := valuation.DriftedWeights(holdings, valuation.Ratios(holdings, livePrices))

	changes := make([]models.WeightChange, len(holdings))
	out := make([]models.Holding, len(holdings))
	for i, h := range holdings {
		changes[i] = models.WeightChange{
			Ticker: h.Ticker,
			From:   models.Float64Ptr(drifted[h.Ticker]),
			To:     models.Float64Ptr(h.WeightPercent),
		}

		out[i] = h
		current := h.LastPrice
		if live, ok := livePrices[h.Ticker]; ok && live > 0 {
			current = live
			out[i].LastPrice = live
		}
		if current > 0 {
			out[i].EntryPrice = current
		}
	}

	return out, newEvent(models.EventRebalance, changes, now)
}

// Replay derives the weight vector after applying the first n events of an
// append-only log. Pass len(events) for the final state.
func Replay(events []models.WeightEvent, n int) map[string]float64 {
	if n > len(events) {
		n = len(events)
	}
	weights := make(map[string]float64)
	for _, ev := range events[:n] {
		for _, c := range ev.Changes {
			if c.To == nil {
				delete(weights, c.Ticker)
				continue
			}
			weights[c.Ticker] = *c.To
		}
	}
	return weights
}

// classify derives the event type from the change pattern: all-additions is
// holding_added, all-removals is holding_removed, anything else is an
// adjustment. Explicit rebalances never pass through here.
func classify(changes []models.WeightChange) models.WeightEventType {
	allAdded := true
	allRemoved := true
	for _, c := range changes {
		if c.From != nil {
			allAdded = false
		}
		if c.To != nil {
			allRemoved = false
		}
	}
	if allAdded {
		return models.EventHoldingAdded
	}
	if allRemoved {
		return models.EventHoldingRemoved
	}
	return models.EventAdjustment
}

func newEvent(eventType models.WeightEventType, changes []models.WeightChange, now time.Time) *models.WeightEvent {
	return &models.WeightEvent{
		ID:        uuid.NewString(),
		Timestamp: now,
		Type:      eventType,
		Changes:   changes,
	}
}

func weightsByTicker(holdings []models.Holding) map[string]float64 {
	weights := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		weights[h.Ticker] = h.WeightPercent
	}
	return weights
}
