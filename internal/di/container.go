// Package di provides dependency injection configuration for the WatchVault server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/watchvaultapp/watchvault-server/internal/catalog/omdb"
	"github.com/watchvaultapp/watchvault-server/internal/catalog/tmdb"
	"github.com/watchvaultapp/watchvault-server/internal/config"
	"github.com/watchvaultapp/watchvault-server/internal/di/providers"
	"github.com/watchvaultapp/watchvault-server/internal/logger"
	"github.com/watchvaultapp/watchvault-server/internal/media/posters"
	"github.com/watchvaultapp/watchvault-server/internal/watchlist"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Watchlist
	do.Provide(injector, providers.ProvideWatchlistContainer)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalogClient)
	do.Provide(injector, providers.ProvideRatingsClient)
	do.Provide(injector, providers.ProvidePosterCache)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*watchlist.Container](injector)
	_ = do.MustInvoke[*tmdb.Client](injector)
	_ = do.MustInvoke[*omdb.Client](injector)
	_ = do.MustInvoke[*posters.Cache](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
