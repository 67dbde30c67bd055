// Package export serializes the watchlist into downloadable artifacts:
// CSV, JSON and a printable HTML document. Exports are read-only views;
// a failed export never touches watchlist state.
package export

import (
	"encoding/csv"
	"encoding/json/v2"
	"io"
	"strconv"
	"time"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// FileName builds the download filename for the given extension,
// e.g. watchlist-2024-06-01.csv.
func FileName(ext string, now time.Time) string {
	return "watchlist-" + now.UTC().Format("2006-01-02") + "." + ext
}

// csvHeader is the fixed column set. Order is part of the format.
var csvHeader = []string{"Title", "Type", "Release Date", "TMDB Rating", "Your Rating", "Watched", "Added Date", "Notes"}

// WriteCSV streams the entries as CSV. Quoting follows encoding/csv rules,
// so titles and notes with commas, quotes or newlines survive a round trip.
func WriteCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return apperrors.ErrExportFailed.WithCause(err)
	}
	for _, e := range entries {
		record := []string{
			e.Title,
			e.MediaKind.Label(),
			e.ReleaseDate,
			strconv.FormatFloat(e.CatalogRating, 'f', 1, 64),
			userRatingCell(e),
			watchedCell(e),
			e.AddedAt.UTC().Format("2006-01-02"),
			e.Notes,
		}
		if err := cw.Write(record); err != nil {
			return apperrors.ErrExportFailed.WithCause(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.ErrExportFailed.WithCause(err)
	}
	return nil
}

func userRatingCell(e domain.Entry) string {
	if !e.Rated() {
		return ""
	}
	return strconv.Itoa(e.UserRating)
}

func watchedCell(e domain.Entry) string {
	if e.Watched {
		return "Yes"
	}
	return "No"
}

// Document is the JSON export envelope.
type Document struct {
	ExportedAt time.Time      `json:"exported_at"`
	TotalItems int            `json:"total_items"`
	Watchlist  []domain.Entry `json:"watchlist"`
}

// WriteJSON streams the entries as a JSON document. The entry objects use
// the persisted field layout, so a re-import reconstructs them losslessly.
func WriteJSON(w io.Writer, entries []domain.Entry, now time.Time) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	doc := Document{
		ExportedAt: now.UTC(),
		TotalItems: len(entries),
		Watchlist:  entries,
	}
	if err := json.MarshalWrite(w, doc); err != nil {
		return apperrors.ErrExportFailed.WithCause(err)
	}
	return nil
}
