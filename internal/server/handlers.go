package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetFullVersion(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// --- Portfolio handlers ---

// handlePortfolios handles the /api/portfolios collection.
func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioList(w, r)
	case http.MethodPost:
		s.handlePortfolioCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routePortfolios dispatches /api/portfolios/{id} and its sub-resources.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Portfolio id is required")
		return
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch action {
	case "":
		s.handlePortfolio(w, r, id)
	case "duplicate":
		s.handlePortfolioDuplicate(w, r, id)
	case "rebalance":
		s.handlePortfolioRebalance(w, r, id)
	case "chart":
		s.handlePortfolioChart(w, r, id)
	case "chart.png":
		s.handlePortfolioChartPNG(w, r, id)
	case "value":
		s.handlePortfolioValue(w, r, id)
	case "history":
		s.handlePortfolioHistory(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.app.PortfolioService.List(r.Context(), OwnerFromRequest(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing portfolios: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"portfolios": summaries,
	})
}

func (s *Server) handlePortfolioCreate(w http.ResponseWriter, r *http.Request) {
	var portfolio models.Portfolio
	if !DecodeJSON(w, r, &portfolio) {
		return
	}
	portfolio.Owner = OwnerFromRequest(r)

	created, err := s.app.PortfolioService.Create(r.Context(), &portfolio)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error creating portfolio: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// handlePortfolio handles GET/PUT/DELETE on a single portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request, id string) {
	owner := OwnerFromRequest(r)

	switch r.Method {
	case http.MethodGet:
		portfolio, err := s.app.PortfolioService.Get(r.Context(), owner, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Portfolio not found: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, portfolio)

	case http.MethodPut:
		var portfolio models.Portfolio
		if !DecodeJSON(w, r, &portfolio) {
			return
		}
		portfolio.ID = id
		portfolio.Owner = owner

		saved, err := s.app.PortfolioService.Save(r.Context(), &portfolio)
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error saving portfolio: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		if err := s.app.PortfolioService.Delete(r.Context(), owner, id); err != nil {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Error deleting portfolio: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handlePortfolioDuplicate(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	dup, err := s.app.PortfolioService.Duplicate(r.Context(), OwnerFromRequest(r), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Error duplicating portfolio: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, dup)
}

func (s *Server) handlePortfolioRebalance(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	rebalanced, err := s.app.PortfolioService.Rebalance(r.Context(), OwnerFromRequest(r), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Error rebalancing portfolio: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, rebalanced)
}
