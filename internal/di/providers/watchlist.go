package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/watchvaultapp/watchvault-server/internal/logger"
	"github.com/watchvaultapp/watchvault-server/internal/watchlist"
)

// ProvideWatchlistContainer provides the hydrated watchlist container.
func ProvideWatchlistContainer(i do.Injector) (*watchlist.Container, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	container := watchlist.NewContainer(storeHandle.Store, sseHandle.Manager, indexHandle.Index, log.Logger)
	container.Hydrate(context.Background())

	log.Info("Watchlist hydrated", "entries", container.Len())

	return container, nil
}
