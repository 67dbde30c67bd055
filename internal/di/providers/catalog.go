package providers

import (
	"github.com/samber/do/v2"

	"github.com/watchvaultapp/watchvault-server/internal/catalog/omdb"
	"github.com/watchvaultapp/watchvault-server/internal/catalog/tmdb"
	"github.com/watchvaultapp/watchvault-server/internal/config"
	"github.com/watchvaultapp/watchvault-server/internal/logger"
	"github.com/watchvaultapp/watchvault-server/internal/media/posters"
)

// ProvideCatalogClient provides the TMDB catalog client, or nil when no API
// key is configured. The API layer treats a nil client as catalog disabled.
func ProvideCatalogClient(i do.Injector) (*tmdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.TMDBAPIKey == "" {
		log.Warn("TMDB API key not configured, catalog endpoints disabled")
		return nil, nil
	}

	client := tmdb.NewClient(tmdb.Config{
		APIKey:  cfg.Catalog.TMDBAPIKey,
		BaseURL: cfg.Catalog.TMDBBaseURL,
	}, log.Logger)

	log.Info("Catalog client initialized")

	return client, nil
}

// ProvideRatingsClient provides the OMDB review score client. The client is
// always constructed; Enabled reports whether a key was configured.
func ProvideRatingsClient(i do.Injector) (*omdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return omdb.NewClient(omdb.Config{
		APIKey:  cfg.Catalog.OMDBAPIKey,
		BaseURL: cfg.Catalog.OMDBBaseURL,
	}, log.Logger), nil
}

// ProvidePosterCache provides the disk-backed poster cache.
func ProvidePosterCache(i do.Injector) (*posters.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cache, err := posters.NewCache(cfg.PosterCachePath(), cfg.Catalog.TMDBImageBaseURL, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Poster cache initialized", "path", cfg.PosterCachePath())

	return cache, nil
}
