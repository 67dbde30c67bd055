// Package api provides the HTTP API server and handlers for the WatchVault application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/watchvaultapp/watchvault-server/internal/catalog/omdb"
	"github.com/watchvaultapp/watchvault-server/internal/catalog/tmdb"
	"github.com/watchvaultapp/watchvault-server/internal/config"
	"github.com/watchvaultapp/watchvault-server/internal/media/posters"
	"github.com/watchvaultapp/watchvault-server/internal/search"
	"github.com/watchvaultapp/watchvault-server/internal/sse"
	"github.com/watchvaultapp/watchvault-server/internal/watchlist"
)

const (
	apiTitle   = "WatchVault API"
	apiVersion = "1.0.0"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg        *config.Config
	container  *watchlist.Container
	search     *search.Index
	catalog    *tmdb.Client
	ratings    *omdb.Client
	posters    *posters.Cache
	sseManager *sse.Manager
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, container *watchlist.Container, index *search.Index, catalog *tmdb.Client, ratings *omdb.Client, posterCache *posters.Cache, sseManager *sse.Manager, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:        cfg,
		container:  container,
		search:     index,
		catalog:    catalog,
		ratings:    ratings,
		posters:    posterCache,
		sseManager: sseManager,
		sseHandler: sseHandler,
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(apiTitle, apiVersion)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes registers all huma operations plus the streaming routes that
// bypass huma (exports, posters, SSE).
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerWatchlistRoutes()
	s.registerShareRoutes()
	s.registerCatalogRoutes()

	// Streaming and download endpoints use chi directly.
	s.router.Get("/api/v1/watchlist/export/csv", s.handleExportCSV)
	s.router.Get("/api/v1/watchlist/export/json", s.handleExportJSON)
	s.router.Get("/api/v1/watchlist/export/print", s.handleExportPrint)
	s.router.Get("/api/v1/posters/blurhash/{path}", s.handleGetBlurHash)
	s.router.Get("/api/v1/posters/{size}/{path}", s.handleGetPoster)
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
}
