// Package storage provides the top-level StorageManager coordinating the
// embedded BadgerHold database.
package storage

import (
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold
// store.
type Manager struct {
	store      *badger.Store
	portfolios interfaces.PortfolioStore
	kv         interfaces.KVStore
	logger     *common.Logger
}

// NewManager opens the store at the configured data path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:      store,
		portfolios: badger.NewPortfolioStorage(store, logger),
		kv:         badger.NewKVStorage(store, logger),
		logger:     logger,
	}, nil
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolios
}

func (m *Manager) KVStore() interfaces.KVStore {
	return m.kv
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
