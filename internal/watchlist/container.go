// Package watchlist holds the authoritative in-memory watchlist and its
// mutation protocol. All reads and writes go through the Container; the
// store is a durable mirror written after every mutation.
package watchlist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// Storage is the persistence contract the container depends on.
// Load never fails (the store degrades to empty); Save may.
type Storage interface {
	Load() []domain.Entry
	Save(entries []domain.Entry) error
}

// SearchIndexer keeps the full-text index in sync with mutations.
type SearchIndexer interface {
	IndexEntry(ctx context.Context, e domain.Entry) error
	DeleteEntry(ctx context.Context, key string) error
	Rebuild(ctx context.Context, entries []domain.Entry) error
}

// NoopIndexer is a no-op implementation of SearchIndexer for testing.
type NoopIndexer struct{}

// IndexEntry is a no-op.
func (NoopIndexer) IndexEntry(context.Context, domain.Entry) error { return nil }

// DeleteEntry is a no-op.
func (NoopIndexer) DeleteEntry(context.Context, string) error { return nil }

// Rebuild is a no-op.
func (NoopIndexer) Rebuild(context.Context, []domain.Entry) error { return nil }

// Container is the single authoritative holder of watchlist state.
//
// Entries keep insertion order. Every mutation applies atomically under the
// lock and is followed synchronously, in the same call, by one Save of the
// full collection. Save failures are logged and the in-memory state kept;
// mutations never fail for persistence reasons.
type Container struct {
	mu       sync.RWMutex
	entries  []domain.Entry
	hydrated bool

	storage  Storage
	emitter  EventEmitter
	indexer  SearchIndexer
	logger   *slog.Logger
	validate *validator.Validate

	// now is swappable in tests.
	now func() time.Time
}

// NewContainer creates an unhydrated container.
func NewContainer(storage Storage, emitter EventEmitter, indexer SearchIndexer, logger *slog.Logger) *Container {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	if indexer == nil {
		indexer = NoopIndexer{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		entries:  []domain.Entry{},
		storage:  storage,
		emitter:  emitter,
		indexer:  indexer,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Hydrate populates the container from storage exactly once. Malformed
// entries are dropped with a warning; hydration itself never fails and
// never triggers a save. Subsequent calls are no-ops.
func (c *Container) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hydrated {
		return
	}
	c.hydrated = true

	loaded := c.storage.Load()
	entries := make([]domain.Entry, 0, len(loaded))
	for _, e := range loaded {
		if err := c.validEntry(e); err != nil {
			c.logger.Warn("dropping malformed watchlist entry",
				"id", e.ID, "media_type", string(e.MediaKind), "error", err.Error())
			continue
		}
		entries = append(entries, e)
	}
	c.entries = entries

	if err := c.indexer.Rebuild(ctx, c.snapshot()); err != nil {
		c.logger.Warn("search index rebuild failed", "error", err.Error())
	}
	c.logger.Info("watchlist hydrated", "entries", len(c.entries), "dropped", len(loaded)-len(c.entries))
}

// validEntry checks entry shape: struct tags plus the media kind enum.
func (c *Container) validEntry(e domain.Entry) error {
	if !e.MediaKind.Valid() {
		return apperrors.Validationf("unknown media type %q", string(e.MediaKind))
	}
	if err := c.validate.Struct(e); err != nil {
		return err
	}
	return nil
}

// Add appends a new entry snapshotted from a catalog item. Adding an
// identity pair already present is a no-op: no save, no event.
func (c *Container) Add(ctx context.Context, e domain.Entry) error {
	if err := c.validEntry(e); err != nil {
		if appErr, ok := err.(*apperrors.Error); ok {
			return appErr
		}
		return apperrors.ErrValidation.WithCause(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(e.ID, e.MediaKind) >= 0 {
		return nil
	}

	// Snapshot semantics: mutable fields start zeroed regardless of input.
	e.AddedAt = c.now()
	e.Watched = false
	e.UserRating = 0
	e.Notes = ""

	c.entries = append(c.entries, e)
	c.persist()
	c.notify(ctx, Change{Type: ChangeAdded, Entry: &e})
	return nil
}

// Remove deletes the entry with the given identity.
func (c *Container) Remove(ctx context.Context, id int, kind domain.MediaKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id, kind)
	if i < 0 {
		return apperrors.NotFoundf("entry %s not on watchlist", domain.EntryKey(id, kind))
	}

	removed := c.entries[i]
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.persist()
	c.notify(ctx, Change{Type: ChangeRemoved, Entry: &removed})
	return nil
}

// ToggleWatched flips the watched flag and returns the updated entry.
func (c *Container) ToggleWatched(ctx context.Context, id int, kind domain.MediaKind) (domain.Entry, error) {
	return c.update(ctx, id, kind, func(e *domain.Entry) error {
		e.Watched = !e.Watched
		return nil
	})
}

// SetUserRating sets the personal rating. Ratings outside [1,5] are
// rejected; the entry is untouched and nothing is saved.
func (c *Container) SetUserRating(ctx context.Context, id int, kind domain.MediaKind, rating int) (domain.Entry, error) {
	if rating < 1 || rating > 5 {
		return domain.Entry{}, apperrors.InvalidRatingf("rating %d outside 1-5", rating)
	}
	return c.update(ctx, id, kind, func(e *domain.Entry) error {
		e.UserRating = rating
		return nil
	})
}

// SetNotes replaces the free-form notes.
func (c *Container) SetNotes(ctx context.Context, id int, kind domain.MediaKind, notes string) (domain.Entry, error) {
	return c.update(ctx, id, kind, func(e *domain.Entry) error {
		e.Notes = notes
		return nil
	})
}

// update applies fn to the entry with the given identity, saves and notifies.
func (c *Container) update(ctx context.Context, id int, kind domain.MediaKind, fn func(*domain.Entry) error) (domain.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id, kind)
	if i < 0 {
		return domain.Entry{}, apperrors.NotFoundf("entry %s not on watchlist", domain.EntryKey(id, kind))
	}

	if err := fn(&c.entries[i]); err != nil {
		return domain.Entry{}, err
	}

	updated := c.entries[i]
	c.persist()
	c.notify(ctx, Change{Type: ChangeUpdated, Entry: &updated})
	return updated, nil
}

// Clear removes all entries.
func (c *Container) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = []domain.Entry{}
	c.persist()

	if err := c.indexer.Rebuild(ctx, nil); err != nil {
		c.logger.Warn("search index rebuild failed", "error", err.Error())
	}
	c.emitter.Emit(Change{Type: ChangeCleared})
}

// Contains reports whether the identity pair is on the watchlist.
func (c *Container) Contains(id int, kind domain.MediaKind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id, kind) >= 0
}

// Get returns the entry with the given identity.
func (c *Container) Get(id int, kind domain.MediaKind) (domain.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id, kind)
	if i < 0 {
		return domain.Entry{}, apperrors.NotFoundf("entry %s not on watchlist", domain.EntryKey(id, kind))
	}
	return c.entries[i], nil
}

// Entries returns a defensive copy of the collection in insertion order.
func (c *Container) Entries() []domain.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Len returns the number of entries.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// indexOf returns the position of the identity pair, or -1. Callers hold the lock.
func (c *Container) indexOf(id int, kind domain.MediaKind) int {
	for i, e := range c.entries {
		if e.Is(id, kind) {
			return i
		}
	}
	return -1
}

// snapshot copies the entry slice. Callers hold at least the read lock.
func (c *Container) snapshot() []domain.Entry {
	out := make([]domain.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// persist writes the full collection through to storage. Write failures are
// logged and swallowed; the in-memory state stays authoritative. Callers
// hold the write lock, so saves land in mutation order.
func (c *Container) persist() {
	if err := c.storage.Save(c.entries); err != nil {
		c.logger.Error("watchlist save failed, keeping in-memory state", "error", err.Error())
	}
}

// notify emits the change event and updates the search index. Callers hold
// the write lock.
func (c *Container) notify(ctx context.Context, ch Change) {
	c.emitter.Emit(ch)

	var err error
	switch ch.Type {
	case ChangeRemoved:
		err = c.indexer.DeleteEntry(ctx, ch.Entry.Key())
	case ChangeAdded, ChangeUpdated:
		err = c.indexer.IndexEntry(ctx, *ch.Entry)
	}
	if err != nil {
		c.logger.Warn("search index update failed", "key", ch.Entry.Key(), "error", err.Error())
	}
}
