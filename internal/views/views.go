// Package views derives presentations of the watchlist: filtered subsets,
// sorted orderings and aggregate statistics. Everything here is a pure
// function over an entry slice; inputs are never mutated.
package views

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
)

// FilterMode selects a watchlist subset.
type FilterMode string

// Filter modes.
const (
	FilterAll       FilterMode = "all"
	FilterWatched   FilterMode = "watched"
	FilterUnwatched FilterMode = "unwatched"
	FilterMovies    FilterMode = "movies"
	FilterSeries    FilterMode = "series"
)

// ParseFilterMode normalizes a mode string; empty means all.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch FilterMode(strings.ToLower(s)) {
	case "":
		return FilterAll, true
	case FilterAll, FilterWatched, FilterUnwatched, FilterMovies, FilterSeries:
		return FilterMode(strings.ToLower(s)), true
	default:
		return "", false
	}
}

// Filter returns the entries matching mode and the free-text query. The
// query is trimmed and matched case-insensitively as a substring of the
// title or the notes; an empty query matches everything.
func Filter(entries []domain.Entry, mode FilterMode, query string) []domain.Entry {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if !matchesMode(e, mode) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Notes), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesMode(e domain.Entry, mode FilterMode) bool {
	switch mode {
	case FilterWatched:
		return e.Watched
	case FilterUnwatched:
		return !e.Watched
	case FilterMovies:
		return e.MediaKind == domain.KindMovie
	case FilterSeries:
		return e.MediaKind == domain.KindSeries
	default:
		return true
	}
}

// SortKey selects the ordering attribute.
type SortKey string

// Sort keys.
const (
	SortAddedDate     SortKey = "added_date"
	SortTitle         SortKey = "title"
	SortReleaseDate   SortKey = "release_date"
	SortCatalogRating SortKey = "catalog_rating"
	SortUserRating    SortKey = "user_rating"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort orders.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey normalizes a sort key string; empty means added_date.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(s)) {
	case "":
		return SortAddedDate, true
	case SortAddedDate, SortTitle, SortReleaseDate, SortCatalogRating, SortUserRating:
		return SortKey(strings.ToLower(s)), true
	default:
		return "", false
	}
}

// ParseSortOrder normalizes an order string; empty means descending, which
// puts the newest additions first under the default key.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(s)) {
	case "":
		return OrderDesc, true
	case OrderAsc, OrderDesc:
		return SortOrder(strings.ToLower(s)), true
	default:
		return "", false
	}
}

// missingReleaseDate sorts entries without a release date before every real
// date under ascending order.
const missingReleaseDate = "1900-01-01"

// Sort returns a sorted copy. The sort is stable: entries equal under the
// key keep their relative insertion order. An unrecognized key falls back
// to added_date.
func Sort(entries []domain.Entry, key SortKey, order SortOrder) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)

	var cmp func(a, b domain.Entry) int
	switch key {
	case SortTitle:
		// Collation, not byte order: case-insensitive and locale-aware.
		col := collate.New(language.Und, collate.IgnoreCase)
		cmp = func(a, b domain.Entry) int {
			return col.CompareString(a.Title, b.Title)
		}
	case SortReleaseDate:
		cmp = func(a, b domain.Entry) int {
			return strings.Compare(releaseDateOr(a), releaseDateOr(b))
		}
	case SortCatalogRating:
		cmp = func(a, b domain.Entry) int {
			return compareFloat(a.CatalogRating, b.CatalogRating)
		}
	case SortUserRating:
		cmp = func(a, b domain.Entry) int {
			return a.UserRating - b.UserRating
		}
	default:
		cmp = func(a, b domain.Entry) int {
			return a.AddedAt.Compare(b.AddedAt)
		}
	}

	if order == OrderDesc {
		inner := cmp
		cmp = func(a, b domain.Entry) int { return -inner(a, b) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

func releaseDateOr(e domain.Entry) string {
	if e.ReleaseDate == "" {
		return missingReleaseDate
	}
	return e.ReleaseDate
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Stats aggregates the watchlist.
type Stats struct {
	Total             int     `json:"total"`
	Watched           int     `json:"watched"`
	Unwatched         int     `json:"unwatched"`
	Movies            int     `json:"movies"`
	Series            int     `json:"series"`
	CompletionPercent float64 `json:"completion_percent"`
	// AverageUserRating covers only entries the user has rated.
	AverageUserRating    float64 `json:"average_user_rating"`
	RatedCount           int     `json:"rated_count"`
	AverageCatalogRating float64 `json:"average_catalog_rating"`
}

// Statistics computes aggregates over the full collection. All values are
// zero for an empty watchlist; no division by zero anywhere.
func Statistics(entries []domain.Entry) Stats {
	s := Stats{Total: len(entries)}

	var userSum, catalogSum float64
	for _, e := range entries {
		if e.Watched {
			s.Watched++
		}
		switch e.MediaKind {
		case domain.KindMovie:
			s.Movies++
		case domain.KindSeries:
			s.Series++
		}
		if e.Rated() {
			s.RatedCount++
			userSum += float64(e.UserRating)
		}
		catalogSum += e.CatalogRating
	}

	s.Unwatched = s.Total - s.Watched
	if s.Total > 0 {
		s.CompletionPercent = float64(s.Watched) / float64(s.Total) * 100
		s.AverageCatalogRating = catalogSum / float64(s.Total)
	}
	if s.RatedCount > 0 {
		s.AverageUserRating = userSum / float64(s.RatedCount)
	}
	return s
}
