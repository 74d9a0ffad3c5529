package chart

import "github.com/bobmcallan/folio/internal/models"

// Return computes the percent change of a ticker over tradingDays trading
// days: the change between the first and last price of a tradingDays+1
// point history.
func Return(src PriceSource, ticker string, tradingDays int) float64 {
	if tradingDays < 1 {
		tradingDays = 1
	}
	history := src.History(ticker, tradingDays+1)
	if len(history) < 2 || history[0].Price <= 0 {
		return 0
	}
	first := history[0].Price
	last := history[len(history)-1].Price
	return (last/first - 1) * 100
}

// PortfolioReturn is the weight-sum of each holding's point return over
// tradingDays trading days.
func PortfolioReturn(src PriceSource, holdings []models.Holding, tradingDays int) float64 {
	total := 0.0
	for _, h := range holdings {
		total += (h.WeightPercent / 100) * Return(src, h.Ticker, tradingDays)
	}
	return total
}
