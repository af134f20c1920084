// Package upstream fetches the two external datasets the refresh pipeline
// reconciles: country listings and currency exchange rates.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/config"
)

// Upstream names reported inside UpstreamError.
const (
	UpstreamCountries     = "countries"
	UpstreamExchangeRates = "exchange_rates"
)

const defaultTimeout = 15 * time.Second

// maxResponseBytes bounds upstream response bodies (the full country listing
// is ~300KB; 16MB leaves ample headroom).
const maxResponseBytes = 16 << 20

// UpstreamError normalizes every gateway failure mode: transport errors,
// non-success statuses and malformed bodies all collapse into it, carrying
// the name of the failing upstream.
type UpstreamError struct {
	Upstream string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Upstream, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// RawCurrency is one entry of a country's currency list as delivered by the
// countries upstream.
type RawCurrency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// RawCountry is a country entry as delivered by the countries upstream.
type RawCountry struct {
	Name       string        `json:"name"`
	Capital    string        `json:"capital"`
	Region     string        `json:"region"`
	Population int64         `json:"population"`
	Flag       string        `json:"flag"`
	Currencies []RawCurrency `json:"currencies"`
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Gateway is the narrow fetch interface consumed by the refresh orchestrator.
type Gateway interface {
	FetchCountries(ctx context.Context) ([]RawCountry, error)
	FetchExchangeRates(ctx context.Context) (map[string]float64, error)
}

// Client fetches both datasets over HTTP with a bounded timeout.
// It performs no retries: a single failed attempt is surfaced immediately.
type Client struct {
	countriesURL string
	ratesURL     string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a gateway client from upstream configuration.
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		countriesURL: cfg.CountriesURL,
		ratesURL:     cfg.ExchangeRatesURL,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// FetchCountries returns the raw country listing.
func (c *Client) FetchCountries(ctx context.Context) ([]RawCountry, error) {
	var countries []RawCountry
	if err := c.getJSON(ctx, UpstreamCountries, c.countriesURL, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// FetchExchangeRates returns the currency_code -> rate table.
func (c *Client) FetchExchangeRates(ctx context.Context) (map[string]float64, error) {
	var payload ratesResponse
	if err := c.getJSON(ctx, UpstreamExchangeRates, c.ratesURL, &payload); err != nil {
		return nil, err
	}
	if payload.Rates == nil {
		return nil, &UpstreamError{
			Upstream: UpstreamExchangeRates,
			Err:      fmt.Errorf("response body has no rates table"),
		}
	}
	return payload.Rates, nil
}

func (c *Client) getJSON(ctx context.Context, upstream, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &UpstreamError{Upstream: upstream, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("upstream", upstream),
			zap.Error(err),
		)
		return &UpstreamError{Upstream: upstream, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused before we bail.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		c.logger.Warn("upstream returned non-success status",
			zap.String("upstream", upstream),
			zap.Int("status", resp.StatusCode),
		)
		return &UpstreamError{
			Upstream: upstream,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &UpstreamError{Upstream: upstream, Err: err}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Warn("upstream returned malformed body",
			zap.String("upstream", upstream),
			zap.Error(err),
		)
		return &UpstreamError{Upstream: upstream, Err: fmt.Errorf("malformed response body: %w", err)}
	}

	c.logger.Debug("upstream fetch completed",
		zap.String("upstream", upstream),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
