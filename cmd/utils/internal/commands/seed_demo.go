package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/gourmet/internal/app"
	"github.com/appetiteclub/gourmet/internal/menu"
	"github.com/appetiteclub/gourmet/internal/order"
	"github.com/aquamarinepk/aqm"
)

// SeedDemo installs demo order history into the configured storage.
func SeedDemo(ctx context.Context, config *aqm.Config, logger aqm.Logger) error {
	logger.Info("Starting demo seeding process...")

	return withStore(ctx, config, logger, func(backend *app.Backend, store *order.Store) error {
		catalog := menu.DefaultCatalog()
		if err := order.ApplyDemoSeeds(ctx, store, catalog, backend.Database(), logger); err != nil {
			return fmt.Errorf("apply demo seeds: %w", err)
		}
		logger.Info("Order history", "count", len(store.Orders()))
		return nil
	})
}

// withStore opens the configured backend, loads the store and closes the
// backend once fn returns.
func withStore(ctx context.Context, config *aqm.Config, logger aqm.Logger, fn func(*app.Backend, *order.Store) error) error {
	backend, err := app.NewBackend(config, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if err := backend.Start(ctx); err != nil {
		return fmt.Errorf("start %s storage: %w", backend.Driver, err)
	}
	defer backend.Stop(ctx)

	store := order.NewStore(backend.KV, logger)
	store.Load(ctx)

	return fn(backend, store)
}
