// Package main provides a tool to seed the database with sample watchlist data.
//
// This writes a handful of well-known titles so the list, stats, export and
// share features have something to work with during development.
//
// Usage:
//
//	DB_PATH=~/WatchVault/data/db go run ./cmd/seed
//	DB_PATH=~/WatchVault/data/db go run ./cmd/seed --reset  # Replace existing entries
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	"github.com/watchvaultapp/watchvault-server/internal/store"
)

var reset = flag.Bool("reset", false, "Replace existing entries instead of merging")

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "WatchVault", "data", "db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	entries := []domain.Entry{}
	if !*reset {
		entries = s.Load()
	}

	existing := make(map[string]bool, len(entries))
	for _, e := range entries {
		existing[fmt.Sprintf("%s-%d", e.MediaKind, e.ID)] = true
	}

	added := 0
	for _, e := range sampleEntries() {
		if existing[fmt.Sprintf("%s-%d", e.MediaKind, e.ID)] {
			continue
		}
		entries = append(entries, e)
		added++
	}

	if err := s.Save(entries); err != nil {
		log.Fatalf("Failed to save watchlist: %v", err)
	}

	fmt.Printf("Seeded %d new entries (%d total)\n", added, len(entries))
	fmt.Println("The search index rebuilds from the store on the next server start.")
}

func sampleEntries() []domain.Entry {
	now := time.Now().UTC()

	return []domain.Entry{
		{
			ID:            603,
			MediaKind:     domain.KindMovie,
			Title:         "The Matrix",
			PosterPath:    "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
			CatalogRating: 8.2,
			ReleaseDate:   "1999-03-31",
			AddedAt:       now.Add(-96 * time.Hour),
			Watched:       true,
			UserRating:    5,
			Notes:         "Rewatch before the sequels.",
		},
		{
			ID:            27205,
			MediaKind:     domain.KindMovie,
			Title:         "Inception",
			PosterPath:    "/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
			CatalogRating: 8.4,
			ReleaseDate:   "2010-07-15",
			AddedAt:       now.Add(-72 * time.Hour),
		},
		{
			ID:            1396,
			MediaKind:     domain.KindSeries,
			Title:         "Breaking Bad",
			PosterPath:    "/ztkUQFLlC19CCMYHW9o1zWhJRNq.jpg",
			CatalogRating: 8.9,
			ReleaseDate:   "2008-01-20",
			AddedAt:       now.Add(-48 * time.Hour),
			Watched:       true,
			UserRating:    5,
		},
		{
			ID:            94605,
			MediaKind:     domain.KindSeries,
			Title:         "Arcane",
			PosterPath:    "/abf8tHznhSvl9BAElD2cQeRr7do.jpg",
			CatalogRating: 8.8,
			ReleaseDate:   "2021-11-06",
			AddedAt:       now.Add(-24 * time.Hour),
		},
		{
			ID:            335984,
			MediaKind:     domain.KindMovie,
			Title:         "Blade Runner 2049",
			PosterPath:    "/gajva2L0rPYkEWjzgFlBXCAVBE5.jpg",
			CatalogRating: 7.5,
			ReleaseDate:   "2017-10-04",
			AddedAt:       now,
			Notes:         "Watch in 4K.",
		},
	}
}
