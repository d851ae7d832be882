package app

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/gourmet/internal/kitchen"
	"github.com/appetiteclub/gourmet/internal/menu"
	"github.com/appetiteclub/gourmet/internal/order"
	"github.com/appetiteclub/gourmet/pkg"
	"github.com/appetiteclub/gourmet/pkg/event"
	"github.com/aquamarinepk/aqm"
	aqmevents "github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/middleware"
)

const (
	AppName    = "gourmet"
	AppVersion = "0.1.0"

	defaultNATSURL = "nats://localhost:4222"
	streamName     = "GOURMET_EVENTS"
)

// App encapsulates the gourmet service application
type App struct {
	config  *aqm.Config
	logger  aqm.Logger
	micro   *aqm.Micro
	catalog *menu.Catalog
	backend *Backend
	store   *order.Store

	lifecycles []interface{}
}

// New creates a new gourmet service application
func New(config *aqm.Config, logger aqm.Logger) (*App, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &App{
		config: config,
		logger: logger,
	}, nil
}

// Initialize sets up all dependencies and components
func (a *App) Initialize(ctx context.Context) error {
	items := menu.DefaultItems()
	if err := menu.ValidateCatalog(items); err != nil {
		a.logger.Error("menu catalog is invalid", "error", err)
		return err
	}
	a.catalog = menu.NewCatalog(items)

	backend, err := NewBackend(a.config, a.logger)
	if err != nil {
		return err
	}
	a.backend = backend
	a.lifecycles = append(a.lifecycles, backend)

	publisher, err := a.buildPublisher(ctx)
	if err != nil {
		return err
	}

	opts := []order.Option{}
	if publisher != nil {
		opts = append(opts, order.WithPublisher(publisher))
	}
	a.store = order.NewStore(backend.KV, a.logger, opts...)

	// Load state once storage is up, then seed demo history if enabled
	storeLifecycle := aqm.LifecycleHooks{
		OnStart: func(ctx context.Context) error {
			a.store.Load(ctx)
			if a.config.GetStringOrDef("seeding.demo", "false") != "true" {
				return nil
			}
			if err := order.ApplyDemoSeeds(ctx, a.store, a.catalog, a.backend.Database(), a.logger); err != nil {
				a.logger.Errorf("Demo seeding failed (non-fatal): %v", err)
			}
			return nil
		},
	}
	a.lifecycles = append(a.lifecycles, storeLifecycle)

	menuHandler := menu.NewHandler(a.catalog, a.config, a.logger)
	orderHandler := order.NewHandler(a.store, a.catalog, a.config, a.logger)
	kitchenHandler := kitchen.NewHandler(a.store, a.config, a.logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: a.logger,
	})

	options := []aqm.Option{
		aqm.WithConfig(a.config),
		aqm.WithLogger(a.logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", menuHandler, orderHandler, kitchenHandler),
		aqm.WithLifecycle(a.lifecycles...),
		aqm.WithHealthChecks(AppName),
	}

	a.micro = aqm.NewMicro(options...)
	return nil
}

// buildPublisher returns nil when NATS is disabled.
func (a *App) buildPublisher(ctx context.Context) (aqmevents.Publisher, error) {
	if a.config.GetStringOrDef("nats.enabled", "false") != "true" {
		a.logger.Info("NATS disabled; domain events are not published")
		return nil, nil
	}

	natsURL := a.config.GetStringOrDef("nats.url", defaultNATSURL)

	streamEnabled, _ := a.config.GetString("nats.stream.enabled")
	if streamEnabled == "true" {
		stream, err := pkg.NewNATSStream(ctx, pkg.NATSStreamConfig{
			URL:        natsURL,
			StreamName: streamName,
			Subjects:   []string{event.OrdersTopic, event.KitchenItemsTopic},
			MaxAge:     24 * time.Hour,
		})
		if err != nil {
			return nil, err
		}
		a.logger.Info("NATS stream initialized for persistent events", "stream", streamName)
		a.lifecycles = append(a.lifecycles, aqm.LifecycleHooks{
			OnStop: func(context.Context) error { return stream.Close() },
		})
		return stream, nil
	}

	publisher, err := pkg.NewNATSPublisher(natsURL, AppName)
	if err != nil {
		return nil, err
	}
	a.logger.Info("NATS publisher initialized", "url", natsURL)
	a.lifecycles = append(a.lifecycles, aqm.LifecycleHooks{
		OnStop: func(context.Context) error { return publisher.Close() },
	})
	return publisher, nil
}

// Store exposes the order store, mainly for tests.
func (a *App) Store() *order.Store {
	return a.store
}

// Run starts the application
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting %s(%s)", AppName, AppVersion)
	if err := a.micro.Run(ctx); err != nil {
		return err
	}
	a.logger.Infof("%s(%s) stopped", AppName, AppVersion)
	return nil
}
