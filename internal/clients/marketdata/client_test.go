package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL))
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewClient("key").IsConfigured())
	assert.False(t, NewClient("").IsConfigured())
}

func TestUnconfiguredClientFailsFast(t *testing.T) {
	c := NewClient("")
	_, err := c.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestGetQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/real-time/AAPL", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_token"))
		w.Write([]byte(`{"code":"AAPL","close":227.52,"change_p":1.25,"previousClose":224.71,"timestamp":1718000000}`))
	})

	quote, err := c.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Ticker)
	assert.InDelta(t, 227.52, quote.Price, 1e-9)
	assert.InDelta(t, 1.25, quote.ChangePercent, 1e-9)
	assert.InDelta(t, 224.71, quote.PrevClose, 1e-9)
}

func TestGetQuoteStringFields(t *testing.T) {
	// EODHD sometimes returns numeric fields as strings or "N/A".
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"AAPL","close":"227.52","change_p":"N/A","previousClose":""}`))
	})

	quote, err := c.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.InDelta(t, 227.52, quote.Price, 1e-9)
	assert.Zero(t, quote.ChangePercent)
}

func TestGetQuoteNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"ZZZZ","close":"NA"}`))
	})

	_, err := c.GetQuote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no quote data")
}

func TestGetQuoteAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid token"))
	})

	_, err := c.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "invalid token")
}

func TestGetCandles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod/SPY", r.URL.Path)
		assert.Equal(t, "a", r.URL.Query().Get("order"))
		w.Write([]byte(`[
			{"date":"2025-06-09","close":570.10,"adjusted_close":569.80},
			{"date":"2025-06-10","close":571.04,"adjusted_close":0},
			{"date":"bad-date","close":999},
			{"date":"2025-06-11","close":572.33,"adjusted_close":572.01}
		]`))
	})

	points, err := c.GetCandles(context.Background(), "spy", 10)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 569.80, points[0].Price, 1e-9) // adjusted close preferred
	assert.InDelta(t, 571.04, points[1].Price, 1e-9) // falls back to raw close
	assert.Equal(t, "2025-06-11", points[2].Date.Format("2006-01-02"))
}

func TestGetCandlesTruncatesToDays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":"2025-06-09","close":100},
			{"date":"2025-06-10","close":101},
			{"date":"2025-06-11","close":102},
			{"date":"2025-06-12","close":103}
		]`))
	})

	points, err := c.GetCandles(context.Background(), "SPY", 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.InDelta(t, 102.0, points[0].Price, 1e-9)
	assert.InDelta(t, 103.0, points[1].Price, 1e-9)
}

func TestSearchInstruments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/vanguard", r.URL.Path)
		w.Write([]byte(`[
			{"Code":"VTI","Name":"Vanguard Total Stock Market ETF","Type":"ETF","Exchange":"US","previousClose":282.11},
			{"Code":"V","Name":"Visa Inc","Type":"Common Stock","Exchange":"US","previousClose":290.45}
		]`))
	})

	results, err := c.SearchInstruments(context.Background(), "vanguard")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.InstrumentTypeETF, results[0].Type)
	assert.Equal(t, models.InstrumentTypeStock, results[1].Type)
	assert.InDelta(t, 282.11, results[0].LastPrice, 1e-9)
}
