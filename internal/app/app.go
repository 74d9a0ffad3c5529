// Package app wires configuration, storage, clients, and services into a
// single application core shared by the server binary and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/clients/marketdata"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/portfolio"
	"github.com/bobmcallan/folio/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	MarketData       interfaces.MarketDataClient
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Check provided path, FOLIO_CONFIG, then binary dir, then fallback.
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	apiKey, err := common.ResolveAPIKey(ctx, storageManager.KVStore(), "marketdata_api_key", config.Clients.MarketData.APIKey)
	if err != nil {
		logger.Warn().Msg("Market data API key not configured - price history will be simulated")
	}

	// The client stays nil without a key; every consumer falls back to the
	// simulator.
	var marketClient interfaces.MarketDataClient
	if apiKey != "" {
		opts := []marketdata.ClientOption{
			marketdata.WithLogger(logger),
			marketdata.WithTimeout(config.Clients.MarketData.GetTimeout()),
		}
		if config.Clients.MarketData.BaseURL != "" {
			opts = append(opts, marketdata.WithBaseURL(config.Clients.MarketData.BaseURL))
		}
		if config.Clients.MarketData.RateLimit > 0 {
			opts = append(opts, marketdata.WithRateLimit(config.Clients.MarketData.RateLimit))
		}
		marketClient = marketdata.NewClient(apiKey, opts...)
	}

	portfolioService := portfolio.NewService(storageManager, marketClient, config.Simulation, logger)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Bool("live_market_data", marketClient != nil).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		MarketData:       marketClient,
		PortfolioService: portfolioService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
