package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
	"github.com/watchvaultapp/watchvault-server/internal/search"
	"github.com/watchvaultapp/watchvault-server/internal/views"
)

func (s *Server) registerWatchlistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWatchlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist",
		Summary:     "List watchlist",
		Description: "Returns the watchlist filtered, searched and sorted per query params",
		Tags:        []string{"Watchlist"},
	}, s.handleListWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addToWatchlist",
		Method:        http.MethodPost,
		Path:          "/api/v1/watchlist",
		Summary:       "Add to watchlist",
		Description:   "Resolves a catalog title and adds it to the watchlist",
		Tags:          []string{"Watchlist"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddToWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID:   "clearWatchlist",
		Method:        http.MethodDelete,
		Path:          "/api/v1/watchlist",
		Summary:       "Clear watchlist",
		Tags:          []string{"Watchlist"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleClearWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWatchlistStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist/stats",
		Summary:     "Watchlist statistics",
		Tags:        []string{"Watchlist"},
	}, s.handleWatchlistStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchWatchlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist/search",
		Summary:     "Search watchlist",
		Description: "Ranked full-text search over titles and notes",
		Tags:        []string{"Watchlist"},
	}, s.handleSearchWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWatchlistEntry",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist/{mediaType}/{id}",
		Summary:     "Get watchlist entry",
		Tags:        []string{"Watchlist"},
	}, s.handleGetEntry)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeFromWatchlist",
		Method:        http.MethodDelete,
		Path:          "/api/v1/watchlist/{mediaType}/{id}",
		Summary:       "Remove from watchlist",
		Tags:          []string{"Watchlist"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleWatched",
		Method:      http.MethodPost,
		Path:        "/api/v1/watchlist/{mediaType}/{id}/watched",
		Summary:     "Toggle watched",
		Tags:        []string{"Watchlist"},
	}, s.handleToggleWatched)

	huma.Register(s.api, huma.Operation{
		OperationID: "setUserRating",
		Method:      http.MethodPut,
		Path:        "/api/v1/watchlist/{mediaType}/{id}/rating",
		Summary:     "Set user rating",
		Tags:        []string{"Watchlist"},
	}, s.handleSetRating)

	huma.Register(s.api, huma.Operation{
		OperationID: "setNotes",
		Method:      http.MethodPut,
		Path:        "/api/v1/watchlist/{mediaType}/{id}/notes",
		Summary:     "Set notes",
		Tags:        []string{"Watchlist"},
	}, s.handleSetNotes)
}

// === DTOs ===

// ListWatchlistInput selects and orders the returned entries.
type ListWatchlistInput struct {
	Filter string `query:"filter" doc:"all, watched, unwatched, movies or series (default all)"`
	Sort   string `query:"sort" doc:"added_date, title, release_date, rating or user_rating (default added_date)"`
	Order  string `query:"order" doc:"asc or desc (default desc)"`
	Query  string `query:"q" doc:"Case-insensitive substring match over titles and notes"`
}

// WatchlistResponse contains watchlist entries in API responses.
type WatchlistResponse struct {
	Items []domain.Entry `json:"items" doc:"Watchlist entries"`
	Total int            `json:"total" doc:"Number of entries after filtering"`
}

// ListWatchlistOutput wraps the watchlist response for Huma.
type ListWatchlistOutput struct {
	Body WatchlistResponse
}

// AddToWatchlistInput identifies the catalog title to add.
type AddToWatchlistInput struct {
	Body struct {
		ID        int    `json:"id" doc:"Catalog title ID"`
		MediaType string `json:"media_type" doc:"movie or tv"`
	}
}

// EntryKeyInput addresses one watchlist entry.
type EntryKeyInput struct {
	MediaType string `path:"mediaType" doc:"movie or tv"`
	ID        int    `path:"id" doc:"Catalog title ID"`
}

// EntryOutput wraps a single entry for Huma.
type EntryOutput struct {
	Body domain.Entry
}

// SetRatingInput carries the 1-5 star rating.
type SetRatingInput struct {
	MediaType string `path:"mediaType" doc:"movie or tv"`
	ID        int    `path:"id" doc:"Catalog title ID"`
	Body      struct {
		Rating int `json:"rating" doc:"Star rating 1-5"`
	}
}

// SetNotesInput carries the free-form notes text.
type SetNotesInput struct {
	MediaType string `path:"mediaType" doc:"movie or tv"`
	ID        int    `path:"id" doc:"Catalog title ID"`
	Body      struct {
		Notes string `json:"notes" maxLength:"2000" doc:"Personal notes (empty clears)"`
	}
}

// StatsOutput wraps the aggregate statistics for Huma.
type StatsOutput struct {
	Body views.Stats
}

// SearchWatchlistInput contains parameters for ranked search.
type SearchWatchlistInput struct {
	Query   string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Search query"`
	Type    string `query:"type" doc:"Restrict to movie or tv"`
	Watched string `query:"watched" doc:"Restrict by watched flag: true or false"`
	Limit   int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset  int    `query:"offset" minimum:"0" doc:"Pagination offset"`
}

// SearchWatchlistOutput wraps ranked search results for Huma.
type SearchWatchlistOutput struct {
	Body search.Result
}

// === Handlers ===

func (s *Server) handleListWatchlist(_ context.Context, input *ListWatchlistInput) (*ListWatchlistOutput, error) {
	mode, ok := views.ParseFilterMode(input.Filter)
	if !ok {
		return nil, apperrors.Validationf("unknown filter %q", input.Filter)
	}
	key, ok := views.ParseSortKey(input.Sort)
	if !ok {
		return nil, apperrors.Validationf("unknown sort key %q", input.Sort)
	}
	order, ok := views.ParseSortOrder(input.Order)
	if !ok {
		return nil, apperrors.Validationf("unknown sort order %q", input.Order)
	}

	entries := views.Sort(views.Filter(s.container.Entries(), mode, input.Query), key, order)

	return &ListWatchlistOutput{Body: WatchlistResponse{
		Items: entries,
		Total: len(entries),
	}}, nil
}

func (s *Server) handleAddToWatchlist(ctx context.Context, input *AddToWatchlistInput) (*EntryOutput, error) {
	kind, err := s.parseKind(input.Body.MediaType)
	if err != nil {
		return nil, err
	}
	if s.catalog == nil {
		return nil, apperrors.Upstream("catalog is not configured")
	}

	detail, err := s.catalog.Details(ctx, kind, input.Body.ID)
	if err != nil {
		return nil, err
	}

	if err := s.container.Add(ctx, detail.Entry()); err != nil {
		return nil, err
	}

	// Add is a no-op for duplicates; either way the stored entry wins.
	entry, err := s.container.Get(input.Body.ID, kind)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleClearWatchlist(ctx context.Context, _ *struct{}) (*struct{}, error) {
	s.container.Clear(ctx)
	return nil, nil
}

func (s *Server) handleGetEntry(_ context.Context, input *EntryKeyInput) (*EntryOutput, error) {
	kind, err := s.parseKind(input.MediaType)
	if err != nil {
		return nil, err
	}

	entry, err := s.container.Get(input.ID, kind)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleRemoveEntry(ctx context.Context, input *EntryKeyInput) (*struct{}, error) {
	kind, err := s.parseKind(input.MediaType)
	if err != nil {
		return nil, err
	}

	return nil, s.container.Remove(ctx, input.ID, kind)
}

func (s *Server) handleToggleWatched(ctx context.Context, input *EntryKeyInput) (*EntryOutput, error) {
	kind, err := s.parseKind(input.MediaType)
	if err != nil {
		return nil, err
	}

	entry, err := s.container.ToggleWatched(ctx, input.ID, kind)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleSetRating(ctx context.Context, input *SetRatingInput) (*EntryOutput, error) {
	kind, err := s.parseKind(input.MediaType)
	if err != nil {
		return nil, err
	}

	entry, err := s.container.SetUserRating(ctx, input.ID, kind, input.Body.Rating)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleSetNotes(ctx context.Context, input *SetNotesInput) (*EntryOutput, error) {
	kind, err := s.parseKind(input.MediaType)
	if err != nil {
		return nil, err
	}

	entry, err := s.container.SetNotes(ctx, input.ID, kind, input.Body.Notes)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleWatchlistStats(_ context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: views.Statistics(s.container.Entries())}, nil
}

func (s *Server) handleSearchWatchlist(ctx context.Context, input *SearchWatchlistInput) (*SearchWatchlistOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Offset = input.Offset
	if input.Limit > 0 {
		params.Limit = input.Limit
	}

	if input.Type != "" {
		kind, err := s.parseKind(input.Type)
		if err != nil {
			return nil, err
		}
		params.Kind = kind
	}

	switch input.Watched {
	case "true":
		watched := true
		params.Watched = &watched
	case "false":
		watched := false
		params.Watched = &watched
	}

	result, err := s.search.Search(ctx, params)
	if err != nil {
		s.logger.Error("Watchlist search failed", "error", err, "query", input.Query)
		return nil, err
	}

	return &SearchWatchlistOutput{Body: *result}, nil
}

// parseKind converts a path or body media type into a domain kind.
func (s *Server) parseKind(mediaType string) (domain.MediaKind, error) {
	kind, ok := domain.ParseMediaKind(mediaType)
	if !ok {
		return "", apperrors.Validationf("unknown media type %q", mediaType)
	}
	return kind, nil
}
