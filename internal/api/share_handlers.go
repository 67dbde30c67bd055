package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
	"github.com/watchvaultapp/watchvault-server/internal/share"
)

func (s *Server) registerShareRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "shareWatchlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist/share",
		Summary:     "Share watchlist",
		Description: "Encodes a snapshot of the watchlist into a shareable link",
		Tags:        []string{"Share"},
	}, s.handleShareWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "decodeSharedWatchlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/shared-watchlist",
		Summary:     "Decode shared watchlist",
		Description: "Decodes a share token back into its snapshot",
		Tags:        []string{"Share"},
	}, s.handleDecodeShared)
}

// === DTOs ===

// ShareInput names the shared snapshot.
type ShareInput struct {
	Title string `query:"title" maxLength:"120" doc:"Snapshot title (default \"My Watchlist\")"`
}

// ShareResponse contains the share token and the link to hand out.
type ShareResponse struct {
	Token        string    `json:"token" doc:"Base64 snapshot token"`
	URL          string    `json:"url" doc:"Shareable link"`
	TotalItems   int       `json:"total_items" doc:"Entries in the snapshot"`
	WatchedItems int       `json:"watched_items" doc:"Watched entries in the snapshot"`
	CreatedAt    time.Time `json:"created_at" doc:"Snapshot creation time"`
}

// ShareOutput wraps the share response for Huma.
type ShareOutput struct {
	Body ShareResponse
}

// DecodeSharedInput carries the share token.
type DecodeSharedInput struct {
	Data string `query:"data" required:"true" doc:"Base64 snapshot token"`
}

// DecodeSharedOutput wraps the decoded snapshot for Huma.
type DecodeSharedOutput struct {
	Body share.Snapshot
}

// === Handlers ===

func (s *Server) handleShareWatchlist(_ context.Context, input *ShareInput) (*ShareOutput, error) {
	snapshot := share.NewSnapshot(input.Title, s.container.Entries(), time.Now().UTC())

	token, err := snapshot.Encode()
	if err != nil {
		s.logger.Error("Failed to encode share snapshot", "error", err)
		return nil, apperrors.ExportFailed("could not encode share snapshot").WithCause(err)
	}

	return &ShareOutput{Body: ShareResponse{
		Token:        token,
		URL:          share.URL(s.cfg.Server.BaseURL, token),
		TotalItems:   snapshot.TotalItems,
		WatchedItems: snapshot.WatchedItems,
		CreatedAt:    snapshot.CreatedAt,
	}}, nil
}

func (s *Server) handleDecodeShared(_ context.Context, input *DecodeSharedInput) (*DecodeSharedOutput, error) {
	snapshot, err := share.Decode(input.Data)
	if err != nil {
		return nil, err
	}

	return &DecodeSharedOutput{Body: snapshot}, nil
}
