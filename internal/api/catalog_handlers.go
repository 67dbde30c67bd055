package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/watchvaultapp/watchvault-server/internal/catalog/omdb"
	"github.com/watchvaultapp/watchvault-server/internal/catalog/tmdb"
	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search catalog",
		Description: "Searches the external catalog for movies and TV shows",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "trendingCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/trending",
		Summary:     "Trending titles",
		Tags:        []string{"Catalog"},
	}, s.handleTrending)

	huma.Register(s.api, huma.Operation{
		OperationID: "popularCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/popular",
		Summary:     "Popular titles",
		Tags:        []string{"Catalog"},
	}, s.handlePopular)

	huma.Register(s.api, huma.Operation{
		OperationID: "topRatedCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/top-rated",
		Summary:     "Top rated titles",
		Tags:        []string{"Catalog"},
	}, s.handleTopRated)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogDetails",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{mediaType}/{id}",
		Summary:     "Catalog title details",
		Description: "Full catalog record, enriched with review scores when available",
		Tags:        []string{"Catalog"},
	}, s.handleCatalogDetails)
}

// === DTOs ===

// CatalogSearchInput contains parameters for catalog search.
type CatalogSearchInput struct {
	Query string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Search query"`
	Type  string `query:"type" doc:"Restrict to movie or tv (omit for both)"`
	Page  int    `query:"page" minimum:"0" doc:"Result page (default 1)"`
}

// CatalogBrowseInput contains parameters for catalog browse endpoints.
type CatalogBrowseInput struct {
	Type string `query:"type" doc:"movie or tv (default movie)"`
	Page int    `query:"page" minimum:"0" doc:"Result page (default 1)"`
}

// CatalogPageOutput wraps one page of catalog results for Huma.
type CatalogPageOutput struct {
	Body tmdb.Page
}

// CatalogDetailInput addresses one catalog title.
type CatalogDetailInput struct {
	MediaType string `path:"mediaType" doc:"movie or tv"`
	ID        int    `path:"id" doc:"Catalog title ID"`
}

// CatalogDetailResponse is the full record plus watchlist and review context.
type CatalogDetailResponse struct {
	tmdb.Detail
	Ratings     *omdb.Ratings `json:"ratings,omitempty" doc:"Review scores from the secondary provider"`
	OnWatchlist bool          `json:"on_watchlist" doc:"Whether the title is already on the watchlist"`
}

// CatalogDetailOutput wraps the detail response for Huma.
type CatalogDetailOutput struct {
	Body CatalogDetailResponse
}

// === Handlers ===

func (s *Server) handleSearchCatalog(ctx context.Context, input *CatalogSearchInput) (*CatalogPageOutput, error) {
	if s.catalog == nil {
		return nil, apperrors.Upstream("catalog is not configured")
	}

	var (
		page *tmdb.Page
		err  error
	)
	switch input.Type {
	case "":
		page, err = s.catalog.SearchMulti(ctx, input.Query, input.Page)
	default:
		kind, kerr := s.parseKind(input.Type)
		if kerr != nil {
			return nil, kerr
		}
		if kind == domain.KindMovie {
			page, err = s.catalog.SearchMovies(ctx, input.Query, input.Page)
		} else {
			page, err = s.catalog.SearchSeries(ctx, input.Query, input.Page)
		}
	}
	if err != nil {
		return nil, err
	}

	return &CatalogPageOutput{Body: *page}, nil
}

func (s *Server) handleTrending(ctx context.Context, input *CatalogBrowseInput) (*CatalogPageOutput, error) {
	if s.catalog == nil {
		return nil, apperrors.Upstream("catalog is not configured")
	}

	page, err := s.catalog.Trending(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	return &CatalogPageOutput{Body: *page}, nil
}

func (s *Server) handlePopular(ctx context.Context, input *CatalogBrowseInput) (*CatalogPageOutput, error) {
	return s.browseByKind(ctx, input, s.catalogClientPopular)
}

func (s *Server) handleTopRated(ctx context.Context, input *CatalogBrowseInput) (*CatalogPageOutput, error) {
	return s.browseByKind(ctx, input, s.catalogClientTopRated)
}

func (s *Server) browseByKind(ctx context.Context, input *CatalogBrowseInput, fetch func(context.Context, domain.MediaKind, int) (*tmdb.Page, error)) (*CatalogPageOutput, error) {
	if s.catalog == nil {
		return nil, apperrors.Upstream("catalog is not configured")
	}

	kind := domain.KindMovie
	if input.Type != "" {
		parsed, err := s.parseKind(input.Type)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	page, err := fetch(ctx, kind, input.Page)
	if err != nil {
		return nil, err
	}

	return &CatalogPageOutput{Body: *page}, nil
}

func (s *Server) catalogClientPopular(ctx context.Context, kind domain.MediaKind, page int) (*tmdb.Page, error) {
	return s.catalog.Popular(ctx, kind, page)
}

func (s *Server) catalogClientTopRated(ctx context.Context, kind domain.MediaKind, page int) (*tmdb.Page, error) {
	return s.catalog.TopRated(ctx, kind, page)
}

func (s *Server) handleCatalogDetails(ctx context.Context, input *CatalogDetailInput) (*CatalogDetailOutput, error) {
	kind, err := s.parseKind(input.MediaType)
	if err != nil {
		return nil, err
	}
	if s.catalog == nil {
		return nil, apperrors.Upstream("catalog is not configured")
	}

	detail, err := s.catalog.Details(ctx, kind, input.ID)
	if err != nil {
		return nil, err
	}

	resp := CatalogDetailResponse{
		Detail:      *detail,
		OnWatchlist: s.container.Contains(input.ID, kind),
	}

	// Review scores are best effort; a provider outage never fails the request.
	if s.ratings != nil && s.ratings.Enabled() && detail.IMDBID != "" {
		ratings, rerr := s.ratings.Ratings(ctx, detail.IMDBID)
		if rerr != nil {
			s.logger.Warn("Review score lookup failed", "imdb_id", detail.IMDBID, "error", rerr)
		} else {
			resp.Ratings = ratings
		}
	}

	return &CatalogDetailOutput{Body: resp}, nil
}
