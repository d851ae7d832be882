package order

import (
	"context"
	"errors"
	"time"

	"github.com/appetiteclub/gourmet/internal/menu"
	"github.com/appetiteclub/gourmet/pkg/enums/kitchenstatus"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/seed"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const orderDemoSeedApplication = "gourmet_demo"

// demoBaskets are past orders the recommender learns from on a fresh install.
var demoBaskets = [][]string{
	{"pizza", "caesar-salad", "mojito"},
	{"pizza", "truffle-fries"},
	{"filet-mignon", "caesar-salad", "mojito"},
	{"garlic-butter-shrimp", "truffle-fries"},
	{"pizza", "caesar-salad"},
	{"filet-mignon", "truffle-fries", "mojito"},
}

// DemoOrders builds finished orders from demoBaskets, oldest first in time and
// returned most recent first. Ids missing from the catalog are skipped.
func DemoOrders(catalog *menu.Catalog, now time.Time, newID func() uuid.UUID) []Order {
	if catalog == nil {
		catalog = menu.DefaultCatalog()
	}
	if newID == nil {
		newID = aqm.GenerateNewID
	}

	orders := make([]Order, 0, len(demoBaskets))
	for i, basket := range demoBaskets {
		placedAt := now.Add(-time.Duration(len(demoBaskets)-i) * 24 * time.Hour)

		o := Order{
			OrderID:  newID(),
			PlacedAt: placedAt,
			Status:   StatusPlaced,
			Items:    make([]OrderItem, 0, len(basket)),
		}

		lines := make([]CartItem, 0, len(basket))
		for _, itemID := range basket {
			item, ok := catalog.GetMenuItem(itemID)
			if !ok {
				continue
			}
			active := item.DefaultIngredients()
			lines = append(lines, CartItem{
				CartItemID:        newID(),
				ItemID:            item.ID,
				Name:              item.Name,
				StationID:         item.StationID,
				ActiveIngredients: active,
				VariantID:         item.VariantID(active),
				AddedAt:           placedAt,
			})
		}
		if len(lines) == 0 {
			continue
		}

		o.ETAMinutes = ETAMinutes(lines)
		o.ETAReadyAt = placedAt.Add(time.Duration(o.ETAMinutes) * time.Minute)
		cookAt := placedAt.Add(2 * time.Minute)
		bumpAt := o.ETAReadyAt
		for _, line := range lines {
			o.Items = append(o.Items, OrderItem{
				CartItem:      line,
				KitchenStatus: kitchenstatus.Statuses.Bumped.Code(),
				ArrivedAt:     placedAt,
				CookStartedAt: cloneTime(&cookAt),
				BumpedAt:      cloneTime(&bumpAt),
			})
		}

		orders = append([]Order{o}, orders...)
	}

	return orders
}

// DemoSeedID identifies the demo history seed in the seed tracker.
const DemoSeedID = "2026-10-14_demo_order_history_v1"

// DemoSeeds returns the seed that installs demo order history.
func DemoSeeds(store *Store, catalog *menu.Catalog) []seed.Seed {
	return []seed.Seed{
		{
			ID:          DemoSeedID,
			Description: "Install past orders so pairing recommendations have history",
			Run: func(ctx context.Context) error {
				store.SeedHistory(ctx, DemoOrders(catalog, store.now(), store.newID))
				return nil
			},
		},
	}
}

// ApplyDemoSeeds runs the demo seeds. With a database the seeds are tracked
// so they run once; without one they run every start and SeedHistory keeps
// them from touching a store that already has orders.
func ApplyDemoSeeds(ctx context.Context, store *Store, catalog *menu.Catalog, db *mongo.Database, logger aqm.Logger) error {
	if store == nil {
		return errors.New("order store is required for demo seeding")
	}
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	demoSeeds := DemoSeeds(store, catalog)

	if db == nil {
		logger.Info("Applying untracked demo order seeds")
		for _, s := range demoSeeds {
			if err := s.Run(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	tracker := seed.NewMongoTracker(db)

	logger.Info("Applying demo order seeds")
	if err := seed.Apply(ctx, tracker, demoSeeds, orderDemoSeedApplication); err != nil {
		return err
	}
	logger.Info("Demo order seeds applied successfully")
	return nil
}
