// Package omdb enriches catalog details with third-party review ratings
// (IMDB, Rotten Tomatoes, Metacritic) looked up by IMDB id.
package omdb

import (
	"context"
	"encoding/json/v2"
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
	// The free tier allows 1000 requests per day; pace well under that.
	defaultRPS   = 1
	defaultBurst = 3

	defaultTimeout = 15 * time.Second
)

// Config holds client settings.
type Config struct {
	APIKey  string
	BaseURL string // e.g. https://www.omdbapi.com
}

// Ratings holds the review scores for one title. Values are the provider's
// display strings ("8.7/10", "83%", "73/100"); absent sources stay empty.
type Ratings struct {
	IMDBID         string `json:"imdb_id"`
	IMDB           string `json:"imdb,omitempty"`
	RottenTomatoes string `json:"rotten_tomatoes,omitempty"`
	Metacritic     string `json:"metacritic,omitempty"`
}

// Client is a rate-limited ratings client.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a new ratings client.
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

// Enabled reports whether the client has an API key configured.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

type rawResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	IMDBID   string `json:"imdbID"`
	Ratings  []struct {
		Source string `json:"Source"`
		Value  string `json:"Value"`
	} `json:"Ratings"`
}

// Ratings looks up review scores by IMDB id.
func (c *Client) Ratings(ctx context.Context, imdbID string) (*Ratings, error) {
	if imdbID == "" {
		return nil, apperrors.Validation("imdb id is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("apikey", c.cfg.APIKey)
	query.Set("i", imdbID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("ratings request", "imdb_id", imdbID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("ratings provider unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Upstreamf("unexpected ratings status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("read ratings response").WithCause(err)
	}

	// The provider reports errors in the payload, not the status code.
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Upstream("malformed ratings response").WithCause(err)
	}
	if raw.Response == "False" {
		return nil, apperrors.NotFoundf("no ratings for %s", imdbID)
	}

	out := &Ratings{IMDBID: imdbID}
	for _, r := range raw.Ratings {
		switch r.Source {
		case "Internet Movie Database":
			out.IMDB = r.Value
		case "Rotten Tomatoes":
			out.RottenTomatoes = r.Value
		case "Metacritic":
			out.Metacritic = r.Value
		}
	}
	return out, nil
}
