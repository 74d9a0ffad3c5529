// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	PortfolioStore() PortfolioStore
	KVStore() KVStore

	// Lifecycle
	Close() error
}

// PortfolioStore persists portfolio records keyed by owner and id.
// The computation core never touches this directly; it receives snapshots
// and returns new snapshots for the caller to persist.
type PortfolioStore interface {
	Get(ctx context.Context, owner, id string) (*models.Portfolio, error)
	Save(ctx context.Context, portfolio *models.Portfolio) error
	List(ctx context.Context, owner string) ([]*models.Portfolio, error)
	Delete(ctx context.Context, owner, id string) error
}

// KVStore manages system-level key-value configuration.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
