// Package share builds self-contained watchlist snapshots for sharing.
// A snapshot is a reduced JSON view base64-encoded into an opaque token
// carried in a URL query parameter. The link holds all data; nothing is
// stored server-side and there is no import path back into the watchlist.
package share

import (
	"encoding/base64"
	"encoding/json/v2"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// sharePath is where a snapshot token is viewable.
const sharePath = "/shared-watchlist"

// Item is the reduced per-entry view embedded in a snapshot.
type Item struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Year       int     `json:"year,omitempty"`
	Rating     float64 `json:"rating"`
	Watched    bool    `json:"watched"`
	UserRating int     `json:"userRating,omitempty"`
}

// Snapshot is a point-in-time share of the watchlist.
type Snapshot struct {
	ID           string    `json:"snapshotId"`
	Title        string    `json:"title"`
	Items        []Item    `json:"items"`
	TotalItems   int       `json:"totalItems"`
	WatchedItems int       `json:"watchedItems"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSnapshot reduces the entries into a snapshot. Poster paths and notes
// are deliberately left out: the share is a public summary.
func NewSnapshot(title string, entries []domain.Entry, now time.Time) Snapshot {
	if title == "" {
		title = "My Watchlist"
	}

	items := make([]Item, 0, len(entries))
	watched := 0
	for _, e := range entries {
		if e.Watched {
			watched++
		}
		items = append(items, Item{
			ID:         e.ID,
			Title:      e.Title,
			Type:       string(e.MediaKind),
			Year:       e.ReleaseYear(),
			Rating:     e.CatalogRating,
			Watched:    e.Watched,
			UserRating: e.UserRating,
		})
	}

	return Snapshot{
		ID:           uuid.NewString(),
		Title:        title,
		Items:        items,
		TotalItems:   len(items),
		WatchedItems: watched,
		CreatedAt:    now.UTC(),
	}
}

// Encode serializes the snapshot into an opaque URL-safe token.
func (s Snapshot) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", apperrors.ErrExportFailed.WithCause(err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode parses a token back into a snapshot.
func Decode(token string) (Snapshot, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Snapshot{}, apperrors.Validation("share token is not valid base64").WithCause(err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, apperrors.Validation("share token payload is malformed").WithCause(err)
	}
	return s, nil
}

// URL builds the shareable link for a token.
func URL(baseURL, token string) string {
	return baseURL + sharePath + "?data=" + url.QueryEscape(token)
}
