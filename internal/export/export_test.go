package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
)

var exportTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func exportList() []domain.Entry {
	return []domain.Entry{
		{
			ID:            603,
			MediaKind:     domain.KindMovie,
			Title:         "The Matrix",
			CatalogRating: 8.2,
			ReleaseDate:   "1999-03-31",
			AddedAt:       exportTime,
			Watched:       true,
			UserRating:    5,
			Notes:         `Contains "quotes", commas, and` + "\nnewlines",
		},
		{
			ID:          1396,
			MediaKind:   domain.KindSeries,
			Title:       "Breaking Bad",
			ReleaseDate: "2008-01-20",
			AddedAt:     exportTime.Add(time.Hour),
		},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "watchlist-2024-06-01.csv", FileName("csv", exportTime))
	assert.Equal(t, "watchlist-2024-06-01.json", FileName("json", exportTime))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportList()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	matrix := records[1]
	assert.Equal(t, "The Matrix", matrix[0])
	assert.Equal(t, "Movie", matrix[1])
	assert.Equal(t, "1999-03-31", matrix[2])
	assert.Equal(t, "8.2", matrix[3])
	assert.Equal(t, "5", matrix[4])
	assert.Equal(t, "Yes", matrix[5])
	assert.Equal(t, "2024-06-01", matrix[6])
	// Embedded quotes, commas and newlines survive the round trip.
	assert.Equal(t, `Contains "quotes", commas, and`+"\nnewlines", matrix[7])

	bb := records[2]
	assert.Equal(t, "TV Show", bb[1])
	assert.Equal(t, "", bb[4]) // unrated
	assert.Equal(t, "No", bb[5])
}

func TestWriteCSV_EmptyListHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}

func TestWriteJSON_Lossless(t *testing.T) {
	want := exportList()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, want, exportTime))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, exportTime, doc.ExportedAt)
	assert.Equal(t, 2, doc.TotalItems)
	assert.Equal(t, want, doc.Watchlist)
}

func TestWriteJSON_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, exportTime))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Zero(t, doc.TotalItems)
	assert.NotNil(t, doc.Watchlist)
	assert.Empty(t, doc.Watchlist)
}

func TestWritePrintable_Sections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrintable(&buf, exportList(), "", exportTime))
	html := buf.String()

	assert.Contains(t, html, "<title>My Watchlist</title>")
	assert.Contains(t, html, "To Watch (1)")
	assert.Contains(t, html, "Watched (1)")
	assert.Contains(t, html, "The Matrix")
	assert.Contains(t, html, "(1999)")
	assert.Contains(t, html, "rated 5/5")
	assert.Contains(t, html, "2 titles")
	assert.Contains(t, html, "50% complete")
}

func TestWritePrintable_EscapesUserContent(t *testing.T) {
	entries := []domain.Entry{{
		ID:        1,
		MediaKind: domain.KindMovie,
		Title:     "<script>alert(1)</script>",
		AddedAt:   exportTime,
	}}

	var buf bytes.Buffer
	require.NoError(t, WritePrintable(&buf, entries, "", exportTime))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestWritePrintable_CustomTitleAndEmptyState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrintable(&buf, nil, "Movie Night", exportTime))
	html := buf.String()

	assert.Contains(t, html, "<title>Movie Night</title>")
	assert.Contains(t, html, "Nothing queued.")
	assert.Contains(t, html, "Nothing watched yet.")
}
