// Package tmdb is a read-only client for the TMDB-compatible catalog API.
// The watchlist snapshots catalog items at add-time; this client is the
// only component that talks to the primary catalog.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

const (
	// TMDB allows ~50 req/s; stay far below it.
	defaultRPS   = 4
	defaultBurst = 8

	defaultTimeout = 15 * time.Second
)

// Config holds client settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. https://api.themoviedb.org/3
}

// Client is a rate-limited catalog API client.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a new catalog client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:  logger,
	}
}

// get executes a rate-limited GET against the catalog and returns the body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.cfg.APIKey)

	reqURL := c.cfg.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("catalog request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("catalog unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("read catalog response").WithCause(err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NotFound("title not found in catalog")
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.Upstream("catalog rejected API key")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apperrors.Upstream("catalog rate limit exceeded")
	default:
		return nil, apperrors.Upstreamf("unexpected catalog status %d", resp.StatusCode)
	}
}
