// Package fetcher retrieves raw product records from the upstream product API
// and substitutes placeholder records when that fails.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"top10/internal/config"
	"top10/internal/logger"
	"top10/internal/models"
	"top10/pkg/utils"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// Result is the outcome of a fetch. Records is never empty.
type Result struct {
	Records  []models.RawProduct
	Source   string
	Fallback error
	Duration time.Duration
}

// Client issues the single product request.
type Client struct {
	http     *retryablehttp.Client
	endpoint string
	headers  http.Header
	log      *logger.Logger
	rng      *rand.Rand
}

// NewClient creates a client for the configured endpoint. RetryMax 0 means a
// single attempt; Timeout 0 leaves the HTTP client without a deadline.
func NewClient(cfg config.APIConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = log.With("component", "http")
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient.Timeout = cfg.Timeout

	return &Client{
		http:     rc,
		endpoint: strings.TrimSpace(cfg.Endpoint),
		headers: utils.NewHTTPHelper().BuildHeaders(map[string]string{
			"x-rapidapi-key":  cfg.Key,
			"x-rapidapi-host": cfg.Host,
		}),
		log: log,
	}
}

// WithHTTPClient swaps the underlying transport client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http.HTTPClient = hc
	return c
}

// WithRand fixes the random source used for placeholders.
func (c *Client) WithRand(rng *rand.Rand) *Client {
	c.rng = rng
	return c
}

// Fetch performs the request and returns at most models.MaxProducts records.
func (c *Client) Fetch(ctx context.Context, q Query) ([]models.RawProduct, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}

	req.URL.RawQuery = q.Values().Encode()

	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	c.log.Info("requesting products", "url", req.URL.String(), "style", q.Style)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request products: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read product response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       utils.NewStringHelper().TruncateString(strings.TrimSpace(string(body)), 200),
		}
	}

	records, err := ExtractRecords(body, models.MaxProducts)
	if err != nil {
		return nil, fmt.Errorf("parse product response: %w", err)
	}

	return records, nil
}

// FetchOrPlaceholder replaces any upstream failure with models.MaxProducts
// placeholder records. The only error it returns is ctx's own, when the run
// was cancelled or timed out; callers must then stop without writing.
func (c *Client) FetchOrPlaceholder(ctx context.Context, q Query, niche string) (Result, error) {
	start := time.Now()

	records, err := c.Fetch(ctx, q)
	if err == nil {
		return Result{
			Records:  records,
			Source:   models.SourceAPI,
			Duration: time.Since(start),
		}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, fmt.Errorf("product fetch interrupted: %w", ctxErr)
	}

	c.log.Warn("⚠️  product fetch failed, falling back to placeholder data", "error", err)

	return Result{
		Records:  Placeholders(niche, models.MaxProducts, c.rng),
		Source:   models.SourcePlaceholder,
		Fallback: err,
		Duration: time.Since(start),
	}, nil
}

// PlaceholderResult returns placeholder records without touching the network.
func (c *Client) PlaceholderResult(niche string) Result {
	return Result{
		Records: Placeholders(niche, models.MaxProducts, c.rng),
		Source:  models.SourcePlaceholder,
	}
}
