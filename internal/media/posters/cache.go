// Package posters resolves watchlist poster paths against the image CDN,
// caches the bytes on disk and derives BlurHash placeholders.
package posters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// Size names map to CDN width buckets.
var sizes = map[string]string{
	"small":    "w185",
	"medium":   "w342",
	"large":    "w780",
	"original": "original",
}

// ValidSize reports whether size is a recognized poster size.
func ValidSize(size string) bool {
	_, ok := sizes[size]
	return ok
}

// posterName accepts the file component of a catalog poster path. Anything
// else (separators, dot segments) is rejected before touching the disk.
var posterName = regexp.MustCompile(`^[A-Za-z0-9_-]+\.(jpg|jpeg|png|webp)$`)

// Cache is a disk-backed poster cache in front of the image CDN.
// Safe for concurrent use.
type Cache struct {
	basePath string
	cdnBase  string
	http     *http.Client
	logger   *slog.Logger
	mu       sync.RWMutex
}

// NewCache creates the cache rooted at basePath.
func NewCache(basePath, cdnBase string, logger *slog.Logger) (*Cache, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create poster cache directory: %w", err)
	}
	return &Cache{
		basePath: basePath,
		cdnBase:  cdnBase,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}, nil
}

// Get returns the poster bytes for a size and catalog poster path,
// fetching from the CDN on a cache miss.
func (c *Cache) Get(ctx context.Context, size, posterPath string) ([]byte, error) {
	cdnSize, ok := sizes[size]
	if !ok {
		return nil, apperrors.Validationf("unknown poster size %q", size)
	}
	name, err := cleanName(posterPath)
	if err != nil {
		return nil, err
	}

	if data, ok := c.read(cdnSize, name); ok {
		return data, nil
	}

	data, err := c.fetch(ctx, cdnSize, name)
	if err != nil {
		return nil, err
	}
	c.write(cdnSize, name, data)
	return data, nil
}

// Path returns where a cached poster lives on disk, cached or not.
func (c *Cache) Path(size, posterPath string) (string, error) {
	cdnSize, ok := sizes[size]
	if !ok {
		return "", apperrors.Validationf("unknown poster size %q", size)
	}
	name, err := cleanName(posterPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.basePath, cdnSize, name), nil
}

func cleanName(posterPath string) (string, error) {
	name := posterPath
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	if !posterName.MatchString(name) {
		return "", apperrors.Validationf("invalid poster path %q", posterPath)
	}
	return name, nil
}

func (c *Cache) read(cdnSize, name string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(c.basePath, cdnSize, name))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) write(cdnSize, name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Join(c.basePath, cdnSize)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.logger.Warn("create poster size directory failed", "dir", dir, "error", err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		c.logger.Warn("poster cache write failed", "name", name, "error", err)
	}
}

func (c *Cache) fetch(ctx context.Context, cdnSize, name string) ([]byte, error) {
	reqURL := c.cdnBase + "/" + cdnSize + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("fetching poster", "size", cdnSize, "name", name)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("image CDN unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, apperrors.Upstream("read poster response").WithCause(err)
		}
		return data, nil
	case http.StatusNotFound:
		return nil, apperrors.NotFoundf("poster %s not found", name)
	default:
		return nil, apperrors.Upstreamf("unexpected CDN status %d", resp.StatusCode)
	}
}
