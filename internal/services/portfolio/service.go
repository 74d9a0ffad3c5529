// Package portfolio provides portfolio lifecycle and performance services
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/chart"
	"github.com/bobmcallan/folio/internal/services/history"
	"github.com/bobmcallan/folio/internal/services/valuation"
)

// Service implements PortfolioService
type Service struct {
	storage interfaces.StorageManager
	market  interfaces.MarketDataClient // optional; nil or unconfigured means simulator-only
	params  chart.AdjustParams
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing
}

// NewService creates a new portfolio service.
// market may be nil; every live-data path falls back to the simulator.
func NewService(storage interfaces.StorageManager, market interfaces.MarketDataClient, sim common.SimulationConfig, logger *common.Logger) *Service {
	params := chart.AdjustParams{
		CashYieldRate:    sim.CashYieldRate,
		DividendDragRate: sim.DividendDragRate,
	}
	if params.CashYieldRate == 0 && params.DividendDragRate == 0 {
		params = chart.DefaultAdjustParams()
	}
	return &Service{
		storage: storage,
		market:  market,
		params:  params,
		logger:  logger,
		now:     time.Now,
	}
}

// Create persists a new portfolio with a fresh id and a created event.
func (s *Service) Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	if errs := Validate(p); len(errs) > 0 {
		return nil, errs[0]
	}

	now := s.now()
	p.ID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.WeightHistory = []models.WeightEvent{*history.Created(p.Holdings, now)}

	if err := s.storage.PortfolioStore().Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	s.logger.Info().Str("id", p.ID).Str("name", p.Name).Int("holdings", len(p.Holdings)).Msg("Portfolio created")
	return p, nil
}

// Get retrieves a portfolio by owner and id.
func (s *Service) Get(ctx context.Context, owner, id string) (*models.Portfolio, error) {
	return s.storage.PortfolioStore().Get(ctx, owner, id)
}

// List returns summary projections of an owner's portfolios.
func (s *Service) List(ctx context.Context, owner string) ([]*models.PortfolioSummary, error) {
	portfolios, err := s.storage.PortfolioStore().List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	summaries := make([]*models.PortfolioSummary, len(portfolios))
	for i, p := range portfolios {
		ratios := valuation.Ratios(p.Holdings, nil)
		drifted := valuation.DriftedWeights(p.Holdings, ratios)
		summaries[i] = &models.PortfolioSummary{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Benchmark:      p.Benchmark,
			HoldingCount:   len(p.Holdings),
			TotalWeight:    p.TotalTargetWeight(),
			CurrentValue:   valuation.Value(p, ratios),
			NeedsRebalance: valuation.NeedsRebalance(p.Holdings, drifted),
			UpdatedAt:      p.UpdatedAt,
		}
	}
	return summaries, nil
}

// Save validates and persists an edited portfolio, appending a weight event
// when the holdings changed since the last persisted state. The diff runs
// against whatever the store currently returns (last-write-wins; no
// cross-session merge).
func (s *Service) Save(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	if errs := Validate(p); len(errs) > 0 {
		return nil, errs[0]
	}

	now := s.now()

	prev, err := s.storage.PortfolioStore().Get(ctx, p.Owner, p.ID)
	if err != nil {
		// Nothing persisted yet: first save, always a created event.
		return s.Create(ctx, p)
	}

	p.CreatedAt = prev.CreatedAt
	p.WeightHistory = prev.WeightHistory
	p.UpdatedAt = now

	if ev := history.Diff(prev.Holdings, p.Holdings, now); ev != nil {
		p.WeightHistory = append(p.WeightHistory, *ev)
		s.logger.Debug().Str("id", p.ID).Str("event", string(ev.Type)).Int("changes", len(ev.Changes)).Msg("Weight event recorded")
	}

	if err := s.storage.PortfolioStore().Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return p, nil
}

// Duplicate copies a portfolio under a fresh id with an empty history and a
// new created event. The copy gets a " (copy)" name suffix.
func (s *Service) Duplicate(ctx context.Context, owner, id string) (*models.Portfolio, error) {
	src, err := s.storage.PortfolioStore().Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	dup := *src
	dup.Name = src.Name + " (copy)"
	dup.Holdings = make([]models.Holding, len(src.Holdings))
	copy(dup.Holdings, src.Holdings)
	dup.WeightHistory = nil
	dup.CreatedAt = time.Time{}

	return s.Create(ctx, &dup)
}

// Delete removes one or more portfolios and their dependent records.
func (s *Service) Delete(ctx context.Context, owner string, ids ...string) error {
	for _, id := range ids {
		if err := s.storage.PortfolioStore().Delete(ctx, owner, id); err != nil {
			return fmt.Errorf("failed to delete portfolio '%s': %w", id, err)
		}
		s.logger.Info().Str("id", id).Str("owner", owner).Msg("Portfolio deleted")
	}
	return nil
}

// Rebalance resets every holding's entry price to its current price (live
// quotes when the market-data client is configured), appends a rebalance
// event, and persists.
func (s *Service) Rebalance(ctx context.Context, owner, id string) (*models.Portfolio, error) {
	p, err := s.storage.PortfolioStore().Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	live, source := s.livePrices(ctx, p.Holdings)

	rebalanced, ev := history.Rebalance(p.Holdings, live, s.now())
	p.Holdings = rebalanced
	p.WeightHistory = append(p.WeightHistory, *ev)
	p.UpdatedAt = s.now()

	if err := s.storage.PortfolioStore().Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save rebalanced portfolio: %w", err)
	}

	s.logger.Info().Str("id", p.ID).Str("prices", source).Msg("Portfolio rebalanced")
	return p, nil
}

// ChartData computes the normalized percent-return series for a portfolio
// over a range, preferring live candles when the market-data client is
// configured and falling back to the simulator on any failure. The result
// carries cash/DRIP adjustment, since-creation clipping, and a drawdown
// series.
func (s *Service) ChartData(ctx context.Context, p *models.Portfolio, rangeLabel models.RangeLabel) (*interfaces.ChartData, error) {
	days := chart.TradingDays(rangeLabel, p.CreatedAt, s.now())

	var (
		livePoints []models.ChartPoint
		liveErr    error
	)
	if s.market != nil && s.market.IsConfigured() {
		livePoints, liveErr = s.liveSeries(ctx, p, days)
		if liveErr != nil {
			s.logger.Warn().Err(liveErr).Str("id", p.ID).Msg("Live chart data unavailable, using simulator")
		}
	}

	simulated := chart.PortfolioSeries(chart.SimulatedSource{}, p.Holdings, p.Benchmark, days)
	series := chart.Resolve(livePoints, liveErr, simulated)

	points := chart.ApplyCashAndDrip(series.Points, p.CashPercent, p.DRIPEnabled, s.params)
	if rangeLabel == models.RangeSince {
		points = chart.ClipSince(points, p.CreatedAt)
	}

	return &interfaces.ChartData{
		Points:   points,
		Drawdown: chart.Drawdown(points),
		Source:   string(series.Source),
	}, nil
}

// Value computes the current valuation of a portfolio, using live quotes
// when available.
func (s *Service) Value(ctx context.Context, p *models.Portfolio) (*interfaces.PortfolioValuation, error) {
	live, source := s.livePrices(ctx, p.Holdings)

	ratios := valuation.Ratios(p.Holdings, live)
	drifted := valuation.DriftedWeights(p.Holdings, ratios)

	return &interfaces.PortfolioValuation{
		CurrentValue:   valuation.Value(p, ratios),
		DriftedWeights: drifted,
		NeedsRebalance: valuation.NeedsRebalance(p.Holdings, drifted),
		Source:         source,
	}, nil
}

// livePrices fetches live quotes per holding when the client is configured.
// Individual failures are logged and skipped; the second return names the
// effective source ("live" only when every holding resolved).
func (s *Service) livePrices(ctx context.Context, holdings []models.Holding) (map[string]float64, string) {
	if s.market == nil || !s.market.IsConfigured() || len(holdings) == 0 {
		return nil, string(chart.SourceSimulated)
	}

	prices := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		quote, err := s.market.GetQuote(ctx, h.Ticker)
		if err != nil || quote == nil || quote.Price <= 0 {
			s.logger.Debug().Str("ticker", h.Ticker).Msg("Live quote unavailable")
			continue
		}
		prices[h.Ticker] = quote.Price
	}

	if len(prices) == len(holdings) {
		return prices, string(chart.SourceLive)
	}
	return prices, string(chart.SourceSimulated)
}

// liveSeries builds a chart series from live candles. Any missing or short
// series aborts the live path so the caller falls back whole.
func (s *Service) liveSeries(ctx context.Context, p *models.Portfolio, days int) ([]models.ChartPoint, error) {
	src := liveSource{candles: make(map[string][]models.PricePoint)}

	tickers := p.Tickers()
	if p.Benchmark != "" {
		tickers = append(tickers, p.Benchmark)
	}
	for _, ticker := range tickers {
		candles, err := s.market.GetCandles(ctx, ticker, days)
		if err != nil {
			return nil, fmt.Errorf("candles for %s: %w", ticker, err)
		}
		if len(candles) < 2 {
			return nil, fmt.Errorf("candles for %s: empty series", ticker)
		}
		src.candles[strings.ToUpper(ticker)] = candles
	}

	return chart.PortfolioSeries(src, p.Holdings, p.Benchmark, days), nil
}

// liveSource adapts prefetched candle data to the chart PriceSource.
type liveSource struct {
	candles map[string][]models.PricePoint
}

func (s liveSource) History(ticker string, days int) []models.PricePoint {
	points := s.candles[strings.ToUpper(ticker)]
	if days < len(points) {
		return points[len(points)-days:]
	}
	return points
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
