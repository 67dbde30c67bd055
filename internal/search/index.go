package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
)

// Index wraps a Bleve index over watchlist entries.
//
// All public methods are safe for concurrent use. The mutex guards against
// index swaps during Rebuild.
type Index struct {
	index  bleve.Index
	path   string // empty for in-memory indexes
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the index.
type Options struct {
	DataPath string       // Directory for index storage; empty means in-memory
	Logger   *slog.Logger // Logger for operations (discard if nil)
}

// mappingVersion is bumped whenever the index mapping changes, forcing a
// rebuild on startup. The container re-feeds the index at hydration, so a
// rebuild only costs one pass over the watchlist.
const mappingVersion = "1"

// NewIndex creates or opens an index. A corrupt or version-mismatched
// on-disk index is discarded and recreated empty.
func NewIndex(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.DataPath == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &Index{index: index, logger: logger}, nil
	}

	indexPath := filepath.Join(opts.DataPath, "watchlist.bleve")
	versionPath := filepath.Join(opts.DataPath, "watchlist.version")

	var index bleve.Index
	needsRebuild := false

	if _, statErr := os.Stat(indexPath); statErr == nil {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(existingVersion) != mappingVersion {
			logger.Info("search index mapping outdated, recreating",
				"new_version", mappingVersion)
			needsRebuild = true
		} else {
			var err error
			index, err = bleve.Open(indexPath)
			if err != nil {
				logger.Warn("failed to open existing search index, recreating",
					"path", indexPath, "error", err)
				needsRebuild = true
			}
		}
	}

	if needsRebuild {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
		index = nil
	}

	if index == nil {
		var err error
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write search version file", "error", err)
		}
		logger.Info("created search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened search index", "path", indexPath)
	}

	return &Index{index: index, path: indexPath, logger: logger}, nil
}

// Close closes the index and releases resources.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.index.Close()
}

// IndexEntry indexes (or reindexes) one entry.
func (ix *Index) IndexEntry(_ context.Context, e domain.Entry) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	doc := NewDocument(e)
	return ix.index.Index(doc.Key, doc.ToMap())
}

// DeleteEntry removes an entry document by its identity key.
func (ix *Index) DeleteEntry(_ context.Context, key string) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.index.Delete(key)
}

// Rebuild replaces the whole index content with the given entries.
// Used at hydration and after Clear.
func (ix *Index) Rebuild(_ context.Context, entries []domain.Entry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	var index bleve.Index
	var err error
	if ix.path == "" {
		index, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if err := os.RemoveAll(ix.path); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
		index, err = bleve.New(ix.path, buildIndexMapping())
	}
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	ix.index = index

	batch := ix.index.NewBatch()
	for _, e := range entries {
		doc := NewDocument(e)
		if err := batch.Index(doc.Key, doc.ToMap()); err != nil {
			return fmt.Errorf("batch index %s: %w", doc.Key, err)
		}
	}
	if err := ix.index.Batch(batch); err != nil {
		return fmt.Errorf("commit rebuild batch: %w", err)
	}

	ix.logger.Info("rebuilt search index", "entries", len(entries))
	return nil
}

// DocumentCount returns the number of indexed entries.
func (ix *Index) DocumentCount() (uint64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.index.DocCount()
}
