// Package search maintains a Bleve full-text index over watchlist entries
// and serves ranked queries. The exact substring filtering used by the
// list endpoint lives in the views package; this index exists for ranked,
// typo-tolerant search.
package search

import (
	"strconv"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
)

// Document is the indexed representation of a watchlist entry.
// The document ID is the entry's identity key (kind:id).
type Document struct {
	Key           string
	ID            int
	Kind          string
	Title         string
	Notes         string
	Watched       bool
	Year          int
	CatalogRating float64
	UserRating    int
	AddedAt       int64
}

// NewDocument builds the index document for an entry.
func NewDocument(e domain.Entry) *Document {
	return &Document{
		Key:           e.Key(),
		ID:            e.ID,
		Kind:          string(e.MediaKind),
		Title:         e.Title,
		Notes:         e.Notes,
		Watched:       e.Watched,
		Year:          e.ReleaseYear(),
		CatalogRating: e.CatalogRating,
		UserRating:    e.UserRating,
		AddedAt:       e.AddedAt.Unix(),
	}
}

// ToMap converts the document to a map with field names matching the
// index mapping.
func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"id":             strconv.Itoa(d.ID),
		"kind":           d.Kind,
		"title":          d.Title,
		"notes":          d.Notes,
		"watched":        d.Watched,
		"year":           d.Year,
		"catalog_rating": d.CatalogRating,
		"user_rating":    d.UserRating,
		"added_at":       d.AddedAt,
	}
}
