package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePortfolio(owner, id, name string) *models.Portfolio {
	return &models.Portfolio{
		ID:            id,
		Owner:         owner,
		Name:          name,
		Benchmark:     "SPY",
		StartingValue: 10000,
		Holdings: []models.Holding{
			{Ticker: "AAPL", WeightPercent: 60, EntryPrice: 220},
			{Ticker: "MSFT", WeightPercent: 40, EntryPrice: 420},
		},
		WeightHistory: []models.WeightEvent{
			{ID: "ev1", Type: models.EventCreated, Timestamp: time.Now().UTC()},
		},
	}
}

func TestPortfolioRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ps := NewPortfolioStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	p := samplePortfolio("default", "p1", "Core Growth")
	require.NoError(t, ps.Save(ctx, p))

	got, err := ps.Get(ctx, "default", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Core Growth", got.Name)
	require.Len(t, got.Holdings, 2)
	assert.InDelta(t, 60.0, got.Holdings[0].WeightPercent, 1e-9)
	require.Len(t, got.WeightHistory, 1)
	assert.Equal(t, models.EventCreated, got.WeightHistory[0].Type)
}

func TestPortfolioGetMissing(t *testing.T) {
	store := newTestStore(t)
	ps := NewPortfolioStorage(store, common.NewSilentLogger())

	_, err := ps.Get(context.Background(), "default", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPortfolioSaveRequiresKeys(t *testing.T) {
	store := newTestStore(t)
	ps := NewPortfolioStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	err := ps.Save(ctx, &models.Portfolio{Owner: "default", Name: "no id"})
	require.Error(t, err)

	err = ps.Save(ctx, &models.Portfolio{ID: "p1", Name: "no owner"})
	require.Error(t, err)
}

func TestPortfolioListScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	ps := NewPortfolioStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	require.NoError(t, ps.Save(ctx, samplePortfolio("default", "p1", "Zeta")))
	require.NoError(t, ps.Save(ctx, samplePortfolio("default", "p2", "alpha")))
	require.NoError(t, ps.Save(ctx, samplePortfolio("alice", "p3", "Other")))

	mine, err := ps.List(ctx, "default")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// Sorted by name, case-insensitive.
	assert.Equal(t, "alpha", mine[0].Name)
	assert.Equal(t, "Zeta", mine[1].Name)

	theirs, err := ps.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestPortfolioDelete(t *testing.T) {
	store := newTestStore(t)
	ps := NewPortfolioStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	require.NoError(t, ps.Save(ctx, samplePortfolio("default", "p1", "Core")))
	require.NoError(t, ps.Delete(ctx, "default", "p1"))

	_, err := ps.Get(ctx, "default", "p1")
	require.Error(t, err)

	err = ps.Delete(ctx, "default", "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPortfolioOwnerIsolation(t *testing.T) {
	store := newTestStore(t)
	ps := NewPortfolioStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	require.NoError(t, ps.Save(ctx, samplePortfolio("default", "p1", "Core")))

	// Another owner cannot read or delete it.
	_, err := ps.Get(ctx, "alice", "p1")
	require.Error(t, err)
	require.Error(t, ps.Delete(ctx, "alice", "p1"))

	_, err = ps.Get(ctx, "default", "p1")
	require.NoError(t, err)
}

func TestKVRoundTrip(t *testing.T) {
	store := newTestStore(t)
	kv := NewKVStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "marketdata_api_key", "secret"))

	value, err := kv.Get(ctx, "marketdata_api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	require.NoError(t, kv.Set(ctx, "marketdata_api_key", "rotated"))
	value, err = kv.Get(ctx, "marketdata_api_key")
	require.NoError(t, err)
	assert.Equal(t, "rotated", value)

	require.NoError(t, kv.Delete(ctx, "marketdata_api_key"))
	_, err = kv.Get(ctx, "marketdata_api_key")
	require.Error(t, err)

	// Deleting a missing key is a no-op.
	require.NoError(t, kv.Delete(ctx, "marketdata_api_key"))
}
