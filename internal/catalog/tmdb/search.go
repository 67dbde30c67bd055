package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// SearchMulti searches movies and series together.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*Page, error) {
	return c.pageRequest(ctx, "/search/multi", "", query, page)
}

// SearchMovies searches movies only.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	return c.pageRequest(ctx, "/search/movie", domain.KindMovie, query, page)
}

// SearchSeries searches series only.
func (c *Client) SearchSeries(ctx context.Context, query string, page int) (*Page, error) {
	return c.pageRequest(ctx, "/search/tv", domain.KindSeries, query, page)
}

// Trending returns the weekly trending movies and series.
func (c *Client) Trending(ctx context.Context, page int) (*Page, error) {
	return c.pageRequest(ctx, "/trending/all/week", "", "", page)
}

// Popular returns popular titles of one kind.
func (c *Client) Popular(ctx context.Context, kind domain.MediaKind, page int) (*Page, error) {
	return c.pageRequest(ctx, "/"+kindPath(kind)+"/popular", kind, "", page)
}

// TopRated returns top-rated titles of one kind.
func (c *Client) TopRated(ctx context.Context, kind domain.MediaKind, page int) (*Page, error) {
	return c.pageRequest(ctx, "/"+kindPath(kind)+"/top_rated", kind, "", page)
}

// Details fetches the full record for one title, including its IMDB id.
func (c *Client) Details(ctx context.Context, kind domain.MediaKind, id int) (*Detail, error) {
	query := url.Values{}
	query.Set("append_to_response", "external_ids")

	body, err := c.get(ctx, fmt.Sprintf("/%s/%d", kindPath(kind), id), query)
	if err != nil {
		return nil, err
	}

	var raw rawDetail
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Upstream("malformed catalog detail").WithCause(err)
	}

	item, ok := raw.normalize(kind)
	if !ok {
		return nil, apperrors.Upstream("catalog detail missing title")
	}

	detail := &Detail{
		Item:     item,
		IMDBID:   raw.IMDBID,
		Tagline:  raw.Tagline,
		Homepage: raw.Homepage,
	}
	// Series expose the IMDB id through external_ids only.
	if detail.IMDBID == "" {
		detail.IMDBID = raw.ExternalIDs.IMDBID
	}
	for _, g := range raw.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}
	return detail, nil
}

// pageRequest runs a paged listing and normalizes the results.
func (c *Client) pageRequest(ctx context.Context, path string, fallbackKind domain.MediaKind, searchQuery string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if searchQuery != "" {
		query.Set("query", searchQuery)
	}

	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var raw rawPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Upstream("malformed catalog page").WithCause(err)
	}

	out := &Page{
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Results:      make([]Item, 0, len(raw.Results)),
	}
	for _, r := range raw.Results {
		if item, ok := r.normalize(fallbackKind); ok {
			out.Results = append(out.Results, item)
		}
	}
	return out, nil
}

func kindPath(kind domain.MediaKind) string {
	if kind == domain.KindSeries {
		return "tv"
	}
	return "movie"
}
