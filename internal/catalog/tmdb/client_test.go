package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
}

func TestSearchMulti_NormalizesMixedResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1, "total_pages": 1, "total_results": 3,
			"results": [
				{"id": 603, "media_type": "movie", "title": "The Matrix", "release_date": "1999-03-31", "vote_average": 8.2, "poster_path": "/m.jpg"},
				{"id": 1396, "media_type": "tv", "name": "Breaking Bad", "first_air_date": "2008-01-20", "vote_average": 8.9},
				{"id": 42, "media_type": "person", "name": "Keanu Reeves"}
			]
		}`))
	})

	page, err := client.SearchMulti(context.Background(), "matrix", 1)
	require.NoError(t, err)

	// The person result is dropped during normalization.
	require.Len(t, page.Results, 2)

	movie := page.Results[0]
	assert.Equal(t, 603, movie.ID)
	assert.Equal(t, domain.KindMovie, movie.MediaKind)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, "1999-03-31", movie.ReleaseDate)
	assert.Equal(t, "/m.jpg", movie.PosterPath)

	series := page.Results[1]
	assert.Equal(t, domain.KindSeries, series.MediaKind)
	assert.Equal(t, "Breaking Bad", series.Title)
	assert.Equal(t, "2008-01-20", series.ReleaseDate)
}

func TestSearchSeries_UsesFallbackKind(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/tv", r.URL.Path)
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20"}]}`))
	})

	page, err := client.SearchSeries(context.Background(), "breaking", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, domain.KindSeries, page.Results[0].MediaKind)
}

func TestDetails_Movie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "external_ids", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(`{
			"id": 603, "title": "The Matrix", "release_date": "1999-03-31",
			"vote_average": 8.2, "imdb_id": "tt0133093",
			"genres": [{"name": "Action"}, {"name": "Science Fiction"}],
			"tagline": "The fight for the future begins."
		}`))
	})

	detail, err := client.Details(context.Background(), domain.KindMovie, 603)
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", detail.Title)
	assert.Equal(t, "tt0133093", detail.IMDBID)
	assert.Equal(t, []string{"Action", "Science Fiction"}, detail.Genres)
	assert.Equal(t, "The fight for the future begins.", detail.Tagline)
}

func TestDetails_SeriesIMDBIDFromExternalIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1396", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20",
			"external_ids": {"imdb_id": "tt0903747"}
		}`))
	})

	detail, err := client.Details(context.Background(), domain.KindSeries, 1396)
	require.NoError(t, err)
	assert.Equal(t, "tt0903747", detail.IMDBID)
	assert.Equal(t, domain.KindSeries, detail.MediaKind)
}

func TestDetails_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Details(context.Background(), domain.KindMovie, 999999)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestGet_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.SearchMulti(context.Background(), "x", 1)
			assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
		})
	}
}

func TestItem_Entry(t *testing.T) {
	item := Item{
		ID:            603,
		MediaKind:     domain.KindMovie,
		Title:         "The Matrix",
		PosterPath:    "/m.jpg",
		CatalogRating: 8.2,
		ReleaseDate:   "1999-03-31",
		Overview:      "not copied into entries",
	}

	e := item.Entry()
	assert.Equal(t, 603, e.ID)
	assert.Equal(t, domain.KindMovie, e.MediaKind)
	assert.Equal(t, "The Matrix", e.Title)
	assert.Equal(t, "/m.jpg", e.PosterPath)
	assert.InDelta(t, 8.2, e.CatalogRating, 0.001)
	assert.Equal(t, "1999-03-31", e.ReleaseDate)
	assert.False(t, e.Watched)
}
