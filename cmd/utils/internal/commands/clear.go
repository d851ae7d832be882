package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/gourmet/internal/app"
	"github.com/appetiteclub/gourmet/internal/order"
	"github.com/aquamarinepk/aqm"
	"go.mongodb.org/mongo-driver/bson"
)

const seedsCollection = "_seeds"

// Clear empties the cart and the order history. On mongo it also drops the
// demo seed record so seed-demo applies again.
func Clear(ctx context.Context, config *aqm.Config, logger aqm.Logger) error {
	logger.Info("Starting cleanup...")

	return withStore(ctx, config, logger, func(backend *app.Backend, store *order.Store) error {
		logger.Info("Clearing state", "orders", len(store.Orders()), "cart", len(store.Cart()))
		store.Reset(ctx)

		db := backend.Database()
		if db == nil {
			return nil
		}
		result, err := db.Collection(seedsCollection).DeleteOne(ctx, bson.M{"_id": order.DemoSeedID})
		if err != nil {
			return fmt.Errorf("delete demo seed tracker: %w", err)
		}
		logger.Info("Cleared demo seed tracker", "deleted", result.DeletedCount)
		return nil
	})
}
