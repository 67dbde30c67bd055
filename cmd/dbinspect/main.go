// Package main provides a read-only inspector for the WatchVault database.
//
// Usage:
//
//	DB_PATH=~/WatchVault/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "WatchVault", "data", "db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	var raw []byte
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("watchlist"))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		fmt.Println("No watchlist stored yet.")
		return
	}
	if err != nil {
		log.Fatalf("Failed to read watchlist: %v", err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Stored watchlist is not valid JSON: %v", err)
	}

	watched := 0
	rated := 0
	withNotes := 0
	byKind := map[domain.MediaKind]int{}
	for _, e := range entries {
		byKind[e.MediaKind]++
		if e.Watched {
			watched++
		}
		if e.UserRating > 0 {
			rated++
		}
		if e.Notes != "" {
			withNotes++
		}
	}

	fmt.Printf("Entries:    %d (%d movies, %d series)\n", len(entries), byKind[domain.KindMovie], byKind[domain.KindSeries])
	fmt.Printf("Watched:    %d\n", watched)
	fmt.Printf("Rated:      %d\n", rated)
	fmt.Printf("With notes: %d\n", withNotes)
	fmt.Printf("Raw size:   %d bytes\n", len(raw))
	fmt.Println()

	for _, e := range entries {
		status := " "
		if e.Watched {
			status = "w"
		}
		fmt.Printf("  [%s] %-6s %7d  %s (%s)\n", status, e.MediaKind, e.ID, e.Title, e.ReleaseDate)
	}
}
