// Package marketdata provides a client for the EODHD market-data API.
// The client is optional: an empty API key leaves it unconfigured and
// every caller falls back to the deterministic simulator.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the MarketDataClient interface against EODHD.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new market-data client. An empty apiKey is allowed
// and leaves the client unconfigured.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsConfigured reports whether the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("market data API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if !c.IsConfigured() {
		return fmt.Errorf("market data client is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Market data API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type quoteResponse struct {
	Code          string      `json:"code"`
	Close         flexFloat64 `json:"close"`
	ChangePercent flexFloat64 `json:"change_p"`
	PreviousClose flexFloat64 `json:"previousClose"`
	Timestamp     int64       `json:"timestamp"`
}

// GetQuote retrieves a real-time quote for a ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	path := fmt.Sprintf("/real-time/%s", url.PathEscape(strings.ToUpper(ticker)))

	var raw quoteResponse
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	if raw.Close <= 0 {
		return nil, fmt.Errorf("no quote data for '%s'", ticker)
	}

	return &models.Quote{
		Ticker:        strings.ToUpper(ticker),
		Price:         float64(raw.Close),
		ChangePercent: float64(raw.ChangePercent),
		PrevClose:     float64(raw.PreviousClose),
		Timestamp:     time.Unix(raw.Timestamp, 0).UTC(),
	}, nil
}

type eodBarResponse struct {
	Date     string      `json:"date"`
	Close    flexFloat64 `json:"close"`
	AdjClose flexFloat64 `json:"adjusted_close"`
}

// GetCandles retrieves daily close prices for the most recent trading days,
// ordered oldest to newest. Adjusted closes are preferred when present.
func (c *Client) GetCandles(ctx context.Context, ticker string, days int) ([]models.PricePoint, error) {
	// Calendar window padded so the requested trading-day count fits.
	from := time.Now().UTC().AddDate(0, 0, -(days*7/5 + 7))

	params := url.Values{}
	params.Set("period", "d")
	params.Set("order", "a")
	params.Set("from", from.Format("2006-01-02"))

	path := fmt.Sprintf("/eod/%s", url.PathEscape(strings.ToUpper(ticker)))

	var bars []eodBarResponse
	if err := c.get(ctx, path, params, &bars); err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			continue
		}
		price := float64(bar.AdjClose)
		if price <= 0 {
			price = float64(bar.Close)
		}
		if price <= 0 {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Price: price})
	}

	if len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}

type searchResponse struct {
	Code          string      `json:"Code"`
	Name          string      `json:"Name"`
	Type          string      `json:"Type"`
	Exchange      string      `json:"Exchange"`
	PreviousClose flexFloat64 `json:"previousClose"`
}

// SearchInstruments searches tradeable instruments by ticker or name.
func (c *Client) SearchInstruments(ctx context.Context, query string) ([]models.Instrument, error) {
	path := fmt.Sprintf("/search/%s", url.PathEscape(query))

	var raw []searchResponse
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}

	instruments := make([]models.Instrument, 0, len(raw))
	for _, r := range raw {
		instruments = append(instruments, models.Instrument{
			Ticker:    r.Code,
			Name:      r.Name,
			Type:      instrumentType(r.Type),
			Exchange:  r.Exchange,
			LastPrice: float64(r.PreviousClose),
		})
	}
	return instruments, nil
}

func instrumentType(apiType string) models.InstrumentType {
	if strings.EqualFold(apiType, "ETF") || strings.EqualFold(apiType, "FUND") {
		return models.InstrumentTypeETF
	}
	return models.InstrumentTypeStock
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
