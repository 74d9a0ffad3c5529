package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/chart"
	"github.com/bobmcallan/folio/internal/services/history"
	"github.com/bobmcallan/folio/internal/simulate"
)

// rangeFromRequest parses the ?range= query parameter, defaulting to 1M.
func rangeFromRequest(r *http.Request) (models.RangeLabel, bool) {
	raw := r.URL.Query().Get("range")
	if raw == "" {
		return models.Range1M, true
	}
	label := models.RangeLabel(raw)
	if !models.ValidRange(label) {
		return "", false
	}
	return label, true
}

func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	label, ok := rangeFromRequest(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid range '%s'", r.URL.Query().Get("range")))
		return
	}

	portfolio, err := s.app.PortfolioService.Get(r.Context(), OwnerFromRequest(r), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Portfolio not found: %v", err))
		return
	}

	data, err := s.app.PortfolioService.ChartData(r.Context(), portfolio, label)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Chart error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, data)
}

func (s *Server) handlePortfolioChartPNG(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	label, ok := rangeFromRequest(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid range '%s'", r.URL.Query().Get("range")))
		return
	}

	portfolio, err := s.app.PortfolioService.Get(r.Context(), OwnerFromRequest(r), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Portfolio not found: %v", err))
		return
	}

	data, err := s.app.PortfolioService.ChartData(r.Context(), portfolio, label)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Chart error: %v", err))
		return
	}

	title := fmt.Sprintf("%s (%s)", portfolio.Name, label)
	png, err := chart.RenderPNG(data.Points, title)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handlePortfolioValue(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	portfolio, err := s.app.PortfolioService.Get(r.Context(), OwnerFromRequest(r), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Portfolio not found: %v", err))
		return
	}

	valuation, err := s.app.PortfolioService.Value(r.Context(), portfolio)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Valuation error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, valuation)
}

// handlePortfolioHistory returns the weight-event log, optionally with the
// allocation replayed up to ?at=n events.
func (s *Server) handlePortfolioHistory(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	portfolio, err := s.app.PortfolioService.Get(r.Context(), OwnerFromRequest(r), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Portfolio not found: %v", err))
		return
	}

	response := map[string]interface{}{
		"events": portfolio.WeightHistory,
	}

	if at := r.URL.Query().Get("at"); at != "" {
		n, err := strconv.Atoi(at)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid 'at' value '%s'", at))
			return
		}
		response["weights_at"] = history.Replay(portfolio.WeightHistory, n)
	}

	WriteJSON(w, http.StatusOK, response)
}

// --- Instrument handlers ---

func (s *Server) handleInstrumentCatalog(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"instruments": simulate.Instruments(),
	})
}

// handleInstrumentSearch searches instruments by ticker or name, using the
// live market-data API when configured and the built-in catalog otherwise.
func (s *Server) handleInstrumentSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	if s.app.MarketData != nil && s.app.MarketData.IsConfigured() {
		results, err := s.app.MarketData.SearchInstruments(r.Context(), query)
		if err == nil {
			WriteJSON(w, http.StatusOK, map[string]interface{}{
				"instruments": results,
				"source":      "live",
			})
			return
		}
		s.logger.Warn().Err(err).Str("query", query).Msg("Live instrument search failed, using catalog")
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"instruments": searchCatalog(query),
		"source":      "simulated",
	})
}

// searchCatalog filters the built-in catalog by ticker or name substring.
func searchCatalog(query string) []models.Instrument {
	query = strings.ToLower(query)
	results := []models.Instrument{}
	for _, inst := range simulate.Instruments() {
		if strings.Contains(strings.ToLower(inst.Ticker), query) ||
			strings.Contains(strings.ToLower(inst.Name), query) {
			results = append(results, inst)
		}
	}
	return results
}

// handleMarketQuote returns a quote for /api/market/quote/{ticker}, falling
// back to the simulated last price when live data is unavailable.
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.ToUpper(PathParam(r, "/api/market/quote/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	if s.app.MarketData != nil && s.app.MarketData.IsConfigured() {
		quote, err := s.app.MarketData.GetQuote(r.Context(), ticker)
		if err == nil {
			WriteJSON(w, http.StatusOK, map[string]interface{}{
				"quote":  quote,
				"source": "live",
			})
			return
		}
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Live quote failed, using simulator")
	}

	instrument := simulate.Lookup(ticker)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"quote": models.Quote{
			Ticker: ticker,
			Price:  instrument.LastPrice,
		},
		"source": "simulated",
	})
}
