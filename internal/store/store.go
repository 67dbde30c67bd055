// Package store persists the watchlist in an embedded Badger database.
//
// The entire entry collection lives under one fixed key and is rewritten on
// every save. The dataset is one person's watchlist; a single serialized
// value keeps load and save atomic without any key-range bookkeeping.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// watchlistKey is the single key holding the serialized entry collection.
var watchlistKey = []byte("watchlist")

// Store wraps a Badger database holding the watchlist mirror.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens (or creates) the Badger database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("database opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database")
	}
	return s.db.Close()
}

// Load reads the persisted entry collection.
//
// Load never fails: a missing key means a fresh install and a corrupt value
// means unusable state; both degrade to an empty watchlist so startup always
// succeeds. Corruption is logged. Shape validation of individual entries is
// the container's job at hydration.
func (s *Store) Load() []domain.Entry {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(watchlistKey)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []domain.Entry{}
	}
	if err != nil {
		s.logWarn("watchlist load failed, starting empty", "error", err.Error())
		return []domain.Entry{}
	}

	var entries []domain.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logWarn("persisted watchlist is corrupt, starting empty", "error", err.Error())
		return []domain.Entry{}
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries
}

// Save overwrites the persisted collection with the given entries.
func (s *Store) Save(entries []domain.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return apperrors.ErrPersistenceWrite.WithCause(err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(watchlistKey, data)
	})
	if err != nil {
		return apperrors.ErrPersistenceWrite.WithCause(err)
	}
	return nil
}

func (s *Store) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
