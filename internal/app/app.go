// Package app wires configuration, storage, remote API access, messaging and
// the HTTP surface into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petstore/internal/apiclient"
	"petstore/internal/config"
	"petstore/internal/handlers"
	"petstore/internal/middleware"
	"petstore/internal/models"
	"petstore/internal/repositories"
	"petstore/internal/services"
	"petstore/internal/storage"
	"petstore/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App is the assembled storefront service.
type App struct {
	cfg    config.Config
	logger *zap.Logger

	db       *gorm.DB
	mq       *rabbitmq.Client
	hub      *services.SupportHub
	registry *services.SessionRegistry
	fiber    *fiber.App
	cancel   context.CancelFunc
}

// OpenDatabase connects to the configured database.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables used by the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KeyValueEntry{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Option customizes New.
type Option func(*App)

// WithDB uses db instead of opening the configured database.
func WithDB(db *gorm.DB) Option {
	return func(a *App) { a.db = db }
}

// New builds the service. When cfg.APIBaseURL is empty the catalog, orders and
// support tickets are served from seeded in-memory repositories.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(a)
	}

	if a.db == nil {
		db, err := OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		a.db = db
	}
	if err := Migrate(a.db); err != nil {
		return nil, err
	}

	productRepo, contentRepo, orderRepo, supportRepo, err := a.repositories()
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, logger)
		if err != nil {
			return nil, err
		}
		a.mq = mq
		publisher = mq
	} else {
		logger.Info("RABBITMQ_URL not set, messaging disabled")
	}

	store := storage.NewAdapter(repositories.NewGORMKeyValueRepository(a.db), cfg.StorageMaxValueBytes, logger)
	a.registry = services.NewSessionRegistry(store, logger)
	a.hub = services.NewSupportHub(logger)

	sessionService := services.NewSessionService(cfg.SessionSecret, cfg.SessionTTL)
	catalogService := services.NewCatalogService(productRepo, contentRepo, cfg.PopularProductsLimit)
	contentService := services.NewContentService(productRepo, contentRepo, logger)
	orderService := services.NewOrderService(orderRepo, publisher, cfg.RabbitMQExchange, services.PricingConfig{
		ShippingFlatFee:       cfg.ShippingFlatFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		TaxRate:               cfg.TaxRate,
	}, logger)
	supportService := services.NewSupportService(supportRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:               "petstore",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/health", a.handleHealth)

	apiV1 := app.Group("/api/v1")
	sessionHandler := handlers.NewSessionHandler(sessionService, a.registry, logger)
	sessionHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.SessionRequired(sessionService, logger))
	sessionHandler.RegisterProtectedRoutes(protectedRoutes)
	handlers.NewCartHandler(a.registry, catalogService, orderService, logger).RegisterRoutes(protectedRoutes)
	handlers.NewWishlistHandler(a.registry, catalogService, logger).RegisterRoutes(protectedRoutes)
	handlers.NewCatalogHandler(catalogService, logger).RegisterRoutes(protectedRoutes)
	handlers.NewContentHandler(contentService, logger).RegisterRoutes(protectedRoutes)
	handlers.NewOrderHandler(orderService, a.registry, logger).RegisterRoutes(protectedRoutes)
	handlers.NewSupportHandler(supportService, a.hub, logger).RegisterRoutes(protectedRoutes)

	a.fiber = app
	return a, nil
}

func (a *App) repositories() (repositories.ProductRepository, repositories.ContentRepository, repositories.OrderRepository, repositories.SupportRepository, error) {
	if a.cfg.APIBaseURL == "" {
		a.logger.Info("API_BASE_URL not set, serving the demo catalog")
		catalog := repositories.NewMockProductRepository()
		if err := seedDemoCatalog(catalog); err != nil {
			return nil, nil, nil, nil, err
		}
		orders := repositories.NewMockOrderRepository()
		return catalog, catalog, orders, orders, nil
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:       a.cfg.APIBaseURL,
		Timeout:       a.cfg.APITimeout,
		RetryAttempts: a.cfg.APIRetryAttempts,
	}, a.logger)
	catalog, orders := client.Catalog(), client.Orders()
	return catalog, catalog, orders, orders, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"sessions": a.registry.Len(),
		"rabbitmq": "disabled",
	}
	if a.mq != nil {
		status["rabbitmq"] = "connected"
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	status["database"] = "ok"
	return c.JSON(status)
}

// Fiber returns the HTTP application.
func (a *App) Fiber() *fiber.App {
	return a.fiber
}

// Start begins evicting idle sessions and, when messaging is enabled,
// consuming support updates. Each instance gets its own server-named queue
// so every replica sees every update.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	go a.registry.RunEviction(ctx, a.cfg.SessionSweepInterval, a.cfg.SessionIdleTimeout)
	if a.mq == nil {
		return nil
	}
	return a.mq.Consume(ctx, "", rabbitmq.RoutingKeySupportUpdated, a.hub.HandleMessage)
}

// Listen serves HTTP on the configured port until Shutdown.
func (a *App) Listen() error {
	a.logger.Info("starting server", zap.String("addr", a.cfg.AppPort))
	return a.fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the HTTP server and releases every resource.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.cancel != nil {
		a.cancel()
	}
	a.hub.Close()
	if err := a.fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
