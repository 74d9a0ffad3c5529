package badger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

type portfolioStorage struct {
	store  *Store
	logger *common.Logger
}

// NewPortfolioStorage creates a new PortfolioStore backed by BadgerHold.
// Records are keyed by owner and id so owners only ever see their own
// portfolios.
func NewPortfolioStorage(store *Store, logger *common.Logger) *portfolioStorage {
	return &portfolioStorage{store: store, logger: logger}
}

func portfolioKey(owner, id string) string {
	return owner + "/" + id
}

func (s *portfolioStorage) Get(_ context.Context, owner, id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.store.db.Get(portfolioKey(owner, id), &portfolio)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("portfolio '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get portfolio '%s': %w", id, err)
	}
	return &portfolio, nil
}

func (s *portfolioStorage) Save(_ context.Context, portfolio *models.Portfolio) error {
	if portfolio.ID == "" {
		return fmt.Errorf("portfolio id is required")
	}
	if portfolio.Owner == "" {
		return fmt.Errorf("portfolio owner is required")
	}

	key := portfolioKey(portfolio.Owner, portfolio.ID)
	if err := s.store.db.Upsert(key, portfolio); err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	s.logger.Debug().Str("id", portfolio.ID).Str("owner", portfolio.Owner).Msg("Portfolio saved")
	return nil
}

func (s *portfolioStorage) List(_ context.Context, owner string) ([]*models.Portfolio, error) {
	var portfolios []models.Portfolio
	query := badgerhold.Where("Owner").Eq(owner)
	if err := s.store.db.Find(&portfolios, query); err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	sort.Slice(portfolios, func(i, j int) bool {
		return strings.ToLower(portfolios[i].Name) < strings.ToLower(portfolios[j].Name)
	})

	result := make([]*models.Portfolio, len(portfolios))
	for i := range portfolios {
		result[i] = &portfolios[i]
	}
	return result, nil
}

func (s *portfolioStorage) Delete(_ context.Context, owner, id string) error {
	err := s.store.db.Delete(portfolioKey(owner, id), models.Portfolio{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("portfolio '%s' not found", id)
		}
		return fmt.Errorf("failed to delete portfolio '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Str("owner", owner).Msg("Portfolio deleted")
	return nil
}
