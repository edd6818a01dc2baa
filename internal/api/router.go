package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions tunes the global middlewares.
type RouterOptions struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
}

// DefaultRouterOptions mirrors the configuration defaults.
var DefaultRouterOptions = RouterOptions{
	RateLimit:      60,
	RateWindow:     time.Minute,
	RequestTimeout: 10 * time.Second,
}

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the summary routes under /api/v1/summary.
//
// Health and readiness endpoints are registered by app.InitializeApp.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimit, opts.RateWindow),
		middleware.Timeout(opts.RequestTimeout),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	summary := router.Group("/api/v1/summary")
	{
		summary.GET("/sales/products/:id", handler.GetProductSales)
		summary.POST("/sales/products", handler.PostSalesByProducts)
		summary.POST("/sales", handler.PostSalesByCustomers)
	}

	return router
}
