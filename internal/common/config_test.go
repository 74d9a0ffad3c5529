package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "data/folio", config.Storage.Path)
	assert.InDelta(t, 0.05, config.Simulation.CashYieldRate, 1e-9)
	assert.InDelta(t, 0.015, config.Simulation.DividendDragRate, 1e-9)
	assert.False(t, config.IsProduction())
}

func TestLoadConfigMergesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "production"

[server]
port = 9090

[simulation]
cash_yield_rate = 0.03
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.InDelta(t, 0.03, config.Simulation.CashYieldRate, 1e-9)
	// Untouched values keep their defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.InDelta(t, 0.015, config.Simulation.DividendDragRate, 1e-9)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_PORT", "7070")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")
	t.Setenv("FOLIO_DATA_PATH", "/tmp/folio-test")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "/tmp/folio-test", config.Storage.Path)
}

func TestMarketDataGetTimeout(t *testing.T) {
	c := MarketDataConfig{Timeout: "5s"}
	assert.Equal(t, 5*time.Second, c.GetTimeout())

	c.Timeout = "garbage"
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}

// fakeKV is a minimal KVStore for ResolveAPIKey tests.
type fakeKV map[string]string

func (f fakeKV) Get(_ context.Context, key string) (string, error) {
	if v, ok := f[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("key '%s' not found", key)
}

func (f fakeKV) Set(_ context.Context, key, value string) error {
	f[key] = value
	return nil
}

func (f fakeKV) Delete(_ context.Context, key string) error {
	delete(f, key)
	return nil
}

func TestResolveAPIKeyPriority(t *testing.T) {
	ctx := context.Background()

	// Environment wins over KV store and config.
	t.Setenv("EODHD_API_KEY", "from-env")
	kv := fakeKV{"marketdata_api_key": "from-kv"}
	key, err := ResolveAPIKey(ctx, kv, "marketdata_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	// KV store wins over config fallback.
	t.Setenv("EODHD_API_KEY", "")
	key, err = ResolveAPIKey(ctx, kv, "marketdata_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-kv", key)

	// Config fallback when nothing else is set.
	delete(kv, "marketdata_api_key")
	key, err = ResolveAPIKey(ctx, kv, "marketdata_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)
}

func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "")
	t.Setenv("FOLIO_MARKETDATA_API_KEY", "")

	key, err := ResolveAPIKey(context.Background(), fakeKV{}, "marketdata_api_key", "")
	require.Error(t, err)
	assert.Empty(t, key)
}
