// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tokopos/internal/domain/catalog/product"
	"tokopos/internal/domain/inventory"
	"tokopos/internal/domain/sales"
	"tokopos/internal/i18n"
	"tokopos/internal/infrastructure/http/v1/handlers"
	"tokopos/internal/infrastructure/http/v1/middleware"
	"tokopos/internal/infrastructure/storage/postgres"
	"tokopos/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation on protected routes.
	JWTValidator middleware.JWTValidator

	// Bundle resolves request locales for response messages.
	Bundle *i18n.Bundle

	// Registry collects HTTP metrics; defaults to the global registry.
	Registry *prometheus.Registry

	// Version reported by the info endpoint.
	Version string

	ProductService   *product.Service
	InventoryService *inventory.Service
	SalesService     *sales.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Locale(cfg.Bundle))
	router.Use(metrics.Handler())
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// API v1
	api := router.Group("/v1")
	{
		// POS terminal routes carry tenant identity in the request.
		salesHandler := handlers.NewSalesHandler(cfg.SalesService, metrics)
		api.POST("/sales", salesHandler.Create)
		api.GET("/sales", salesHandler.List)
		api.GET("/sales/:id", salesHandler.GetByID)

		// Back-office routes require a bearer token.
		inventoryHandler := handlers.NewInventoryHandler(cfg.InventoryService, metrics)
		productHandler := handlers.NewProductHandler(cfg.ProductService)

		inv := api.Group("/inventory")
		inv.Use(middleware.Auth(cfg.JWTValidator))
		{
			inv.POST("/stock-adjustment", inventoryHandler.AdjustStock)
			inv.GET("/movements", inventoryHandler.ListMovements)
			inv.GET("/low-stock", productHandler.ListLowStock)

			inv.POST("/products", productHandler.Create)
			inv.GET("/products", productHandler.List)
			inv.GET("/products/:id", productHandler.GetByID)
			inv.PUT("/products/:id", productHandler.Update)
			inv.DELETE("/products/:id", middleware.RequireRole("owner", "admin"), productHandler.Delete)
		}
	}

	return router
}
