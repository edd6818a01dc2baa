package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/internal/api"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/guttosm/salespulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the data store selected by DB_DRIVER (see OpenStore).
//   - Creates the summary service and the HTTP handler layer.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close the store.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	store, cleanup, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewSummaryService(store)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	api.NewHealthHandler(store.Ping).Register(router)

	return router, cleanup, nil
}

// OpenStore connects the storage backend named by cfg.Driver and returns it
// with a cleanup function that closes the connection pool.
func OpenStore(cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		gs, err := mysqlOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize mysql: %w", err)
		}
		return gs, func() { _ = gs.Close() }, nil

	case config.DriverPostgres, "":
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return storage.NewSalesRepository(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
