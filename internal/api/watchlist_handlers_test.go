package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	"github.com/watchvaultapp/watchvault-server/internal/search"
	"github.com/watchvaultapp/watchvault-server/internal/views"
)

// newFakeTMDB serves a minimal catalog: The Matrix as a movie and Breaking
// Bad as a series.
func newFakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"poster_path": "/matrix.jpg",
			"vote_average": 8.2,
			"release_date": "1999-03-31",
			"imdb_id": "tt0133093",
			"genres": [{"name": "Action"}, {"name": "Science Fiction"}],
			"tagline": "Welcome to the Real World."
		}`))
	})
	mux.HandleFunc("/tv/1396", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"id": 1396,
			"name": "Breaking Bad",
			"poster_path": "/bb.jpg",
			"vote_average": 8.9,
			"first_air_date": "2008-01-20",
			"external_ids": {"imdb_id": "tt0903747"}
		}`))
	})

	return httptest.NewServer(mux)
}

func decodeBody[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestListWatchlist_Empty(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Get("/api/v1/watchlist")
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[WatchlistResponse](t, resp)
	assert.Zero(t, body.Total)
	assert.Empty(t, body.Items)
}

func TestListWatchlist_FilterSortQuery(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry(), breakingBadEntry())

	_, err := ts.container.ToggleWatched(context.Background(), 603, domain.KindMovie)
	require.NoError(t, err)

	resp := ts.api.Get("/api/v1/watchlist?filter=watched")
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody[WatchlistResponse](t, resp)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "The Matrix", body.Items[0].Title)

	resp = ts.api.Get("/api/v1/watchlist?sort=title&order=asc")
	require.Equal(t, http.StatusOK, resp.Code)
	body = decodeBody[WatchlistResponse](t, resp)
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "Breaking Bad", body.Items[0].Title)
	assert.Equal(t, "The Matrix", body.Items[1].Title)

	resp = ts.api.Get("/api/v1/watchlist?q=break")
	require.Equal(t, http.StatusOK, resp.Code)
	body = decodeBody[WatchlistResponse](t, resp)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Breaking Bad", body.Items[0].Title)
}

func TestListWatchlist_UnknownFilter(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Get("/api/v1/watchlist?filter=bogus")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAddToWatchlist_ResolvesCatalogTitle(t *testing.T) {
	catalog := newFakeTMDB(t)
	defer catalog.Close()

	ts := newTestServer(t, testDeps{catalogURL: catalog.URL})

	resp := ts.api.Post("/api/v1/watchlist", map[string]any{
		"id":         603,
		"media_type": "movie",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	entry := decodeBody[domain.Entry](t, resp)
	assert.Equal(t, 603, entry.ID)
	assert.Equal(t, domain.KindMovie, entry.MediaKind)
	assert.Equal(t, "The Matrix", entry.Title)
	assert.Equal(t, "/matrix.jpg", entry.PosterPath)
	assert.InDelta(t, 8.2, entry.CatalogRating, 0.001)
	assert.False(t, entry.Watched)
	assert.False(t, entry.AddedAt.IsZero())
}

func TestAddToWatchlist_AcceptsTVAlias(t *testing.T) {
	catalog := newFakeTMDB(t)
	defer catalog.Close()

	ts := newTestServer(t, testDeps{catalogURL: catalog.URL})

	resp := ts.api.Post("/api/v1/watchlist", map[string]any{
		"id":         1396,
		"media_type": "tv",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	entry := decodeBody[domain.Entry](t, resp)
	assert.Equal(t, domain.KindSeries, entry.MediaKind)
	assert.Equal(t, "Breaking Bad", entry.Title)
}

func TestAddToWatchlist_DuplicateIsIdempotent(t *testing.T) {
	catalog := newFakeTMDB(t)
	defer catalog.Close()

	ts := newTestServer(t, testDeps{catalogURL: catalog.URL})

	for range 2 {
		resp := ts.api.Post("/api/v1/watchlist", map[string]any{
			"id":         603,
			"media_type": "movie",
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	assert.Equal(t, 1, ts.container.Len())
}

func TestAddToWatchlist_UnknownMediaType(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Post("/api/v1/watchlist", map[string]any{
		"id":         603,
		"media_type": "book",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAddToWatchlist_CatalogNotConfigured(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Post("/api/v1/watchlist", map[string]any{
		"id":         603,
		"media_type": "movie",
	})
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}

func TestAddToWatchlist_TitleNotInCatalog(t *testing.T) {
	catalog := newFakeTMDB(t)
	defer catalog.Close()

	ts := newTestServer(t, testDeps{catalogURL: catalog.URL})

	resp := ts.api.Post("/api/v1/watchlist", map[string]any{
		"id":         999,
		"media_type": "movie",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetEntry(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	resp := ts.api.Get("/api/v1/watchlist/movie/603")
	require.Equal(t, http.StatusOK, resp.Code)

	entry := decodeBody[domain.Entry](t, resp)
	assert.Equal(t, "The Matrix", entry.Title)
}

func TestGetEntry_NotFound(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	resp := ts.api.Get("/api/v1/watchlist/movie/999")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Same ID under the other kind is a different identity.
	resp = ts.api.Get("/api/v1/watchlist/tv/603")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetEntry_UnknownMediaType(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Get("/api/v1/watchlist/book/603")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRemoveEntry(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	resp := ts.api.Delete("/api/v1/watchlist/movie/603")
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Zero(t, ts.container.Len())

	resp = ts.api.Delete("/api/v1/watchlist/movie/603")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestToggleWatched(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	resp := ts.api.Post("/api/v1/watchlist/movie/603/watched")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decodeBody[domain.Entry](t, resp).Watched)

	resp = ts.api.Post("/api/v1/watchlist/movie/603/watched")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, decodeBody[domain.Entry](t, resp).Watched)
}

func TestSetRating(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	resp := ts.api.Put("/api/v1/watchlist/movie/603/rating", map[string]any{"rating": 4})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 4, decodeBody[domain.Entry](t, resp).UserRating)
}

func TestSetRating_OutOfRange(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	for _, rating := range []int{-1, 0, 6, 9} {
		resp := ts.api.Put("/api/v1/watchlist/movie/603/rating", map[string]any{"rating": rating})
		assert.Equal(t, http.StatusBadRequest, resp.Code, "rating %d", rating)
	}
}

func TestSetRating_EntryNotFound(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Put("/api/v1/watchlist/movie/603/rating", map[string]any{"rating": 3})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSetNotes(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry())

	resp := ts.api.Put("/api/v1/watchlist/movie/603/notes", map[string]any{"notes": "rewatch yearly"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "rewatch yearly", decodeBody[domain.Entry](t, resp).Notes)

	// Empty notes clear the field.
	resp = ts.api.Put("/api/v1/watchlist/movie/603/notes", map[string]any{"notes": ""})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[domain.Entry](t, resp).Notes)
}

func TestWatchlistStats(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry(), breakingBadEntry())

	ctx := context.Background()
	_, err := ts.container.ToggleWatched(ctx, 603, domain.KindMovie)
	require.NoError(t, err)
	_, err = ts.container.SetUserRating(ctx, 603, domain.KindMovie, 5)
	require.NoError(t, err)

	resp := ts.api.Get("/api/v1/watchlist/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	stats := decodeBody[views.Stats](t, resp)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Watched)
	assert.Equal(t, 1, stats.Movies)
	assert.Equal(t, 1, stats.Series)
	assert.InDelta(t, 50.0, stats.CompletionPercent, 0.001)
	assert.InDelta(t, 5.0, stats.AverageUserRating, 0.001)
}

func TestClearWatchlist(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry(), breakingBadEntry())

	resp := ts.api.Delete("/api/v1/watchlist")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/watchlist")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Zero(t, decodeBody[WatchlistResponse](t, resp).Total)
}

func TestSearchWatchlist(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry(), breakingBadEntry())

	resp := ts.api.Get("/api/v1/watchlist/search?q=matrix")
	require.Equal(t, http.StatusOK, resp.Code)

	result := decodeBody[search.Result](t, resp)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "The Matrix", result.Hits[0].Title)
	assert.Equal(t, 603, result.Hits[0].ID)
}

func TestSearchWatchlist_KindFilter(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	ts.seed(t, matrixEntry(), breakingBadEntry())

	resp := ts.api.Get("/api/v1/watchlist/search?q=matrix&type=tv")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[search.Result](t, resp).Hits)
}

func TestSearchWatchlist_MissingQuery(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := ts.api.Get("/api/v1/watchlist/search")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
