// Package domain contains the core watchlist types shared across the application.
package domain

import (
	"strconv"
	"time"
)

// MediaKind distinguishes the two catalog namespaces an entry can come from.
// The same catalog id can exist once as a movie and once as a series.
type MediaKind string

// MediaKind values as persisted and exposed over the API.
const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// Valid returns true if the kind is a recognized value.
func (k MediaKind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// Label returns the human-readable label used in exports.
func (k MediaKind) Label() string {
	if k == KindMovie {
		return "Movie"
	}
	return "TV Show"
}

// ParseMediaKind normalizes a kind string from the API or persisted data.
// The original catalog uses "tv" where we use "series"; both are accepted.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "series", "tv":
		return KindSeries, true
	default:
		return "", false
	}
}

// Entry is the sole persisted entity: one title on the user's watchlist.
//
// Identity is the pair (ID, MediaKind). Display fields (Title, PosterPath,
// CatalogRating, ReleaseDate) are snapshotted at add-time and never
// re-fetched; AddedAt is immutable after creation. Only Watched, UserRating
// and Notes change over an entry's life.
//
// JSON field names match the persisted storage layout and the export format.
type Entry struct {
	ID            int       `json:"id" validate:"required,gt=0"`
	MediaKind     MediaKind `json:"media_type" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	PosterPath    string    `json:"poster_path,omitempty"`
	CatalogRating float64   `json:"vote_average"`
	ReleaseDate   string    `json:"release_date,omitempty"`
	AddedAt       time.Time `json:"added_date"`
	Watched       bool      `json:"watched"`
	UserRating    int       `json:"user_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Notes         string    `json:"notes,omitempty"`
}

// Key returns the stable identity string combining media kind and catalog id.
func (e Entry) Key() string {
	return EntryKey(e.ID, e.MediaKind)
}

// EntryKey builds the identity string for an (id, kind) pair without an Entry.
func EntryKey(id int, kind MediaKind) string {
	return string(kind) + ":" + strconv.Itoa(id)
}

// Is reports whether the entry matches the given identity pair.
func (e Entry) Is(id int, kind MediaKind) bool {
	return e.ID == id && e.MediaKind == kind
}

// Rated returns true if the user has assigned a personal rating.
func (e Entry) Rated() bool {
	return e.UserRating > 0
}

// ReleaseYear returns the four-digit year of the release date, or 0 when the
// release date is absent or malformed.
func (e Entry) ReleaseYear() int {
	if len(e.ReleaseDate) < 4 {
		return 0
	}
	t, err := time.Parse("2006-01-02", e.ReleaseDate)
	if err != nil {
		// Some catalog records carry a bare year.
		y, yerr := time.Parse("2006", e.ReleaseDate[:4])
		if yerr != nil {
			return 0
		}
		return y.Year()
	}
	return t.Year()
}
