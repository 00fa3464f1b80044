// Package main is the entry point for the tokopos API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"tokopos/internal/domain/auth"
	"tokopos/internal/domain/catalog/product"
	"tokopos/internal/domain/inventory"
	"tokopos/internal/domain/sales"
	"tokopos/internal/domain/subscription"
	"tokopos/internal/i18n"
	"tokopos/internal/infrastructure/cache"
	v1 "tokopos/internal/infrastructure/http/v1"
	"tokopos/internal/infrastructure/storage/postgres"
	"tokopos/internal/infrastructure/storage/postgres/catalog_repo"
	"tokopos/internal/infrastructure/storage/postgres/inventory_repo"
	"tokopos/internal/infrastructure/storage/postgres/sales_repo"
	"tokopos/internal/infrastructure/storage/postgres/subscription_repo"
	"tokopos/pkg/logger"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting tokopos server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Plan cache (optional) ---
	var planCache subscription.Cache
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		client, err := cache.NewClient(ctx, cache.Config{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		})
		if err != nil {
			log.Warnw("redis unavailable, entitlement caching disabled", "error", err)
		} else {
			defer client.Close()
			planCache = cache.NewPlanCache(client)
			log.Info("redis connection established")
		}
	}

	// --- Localization ---
	bundle, err := i18n.NewBundle()
	if err != nil {
		log.Fatalw("failed to load locales", "error", err)
	}

	// --- JWT ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	storeRepo := catalog_repo.NewStoreRepo(txManager)
	movementRepo := inventory_repo.NewMovementRepo(txManager)
	saleRepo := sales_repo.NewSaleRepo(txManager)
	subscriptionRepo := subscription_repo.NewSubscriptionRepo(txManager)

	// --- Event publishing (transactional outbox) ---
	outbox := postgres.NewOutboxPublisher(txManager)

	// --- Services ---
	productService := product.NewService(productRepo, txManager)
	subscriptionService := subscription.NewService(subscriptionRepo, planCache)
	inventoryService := inventory.NewService(movementRepo, productRepo, storeRepo, txManager, outbox)
	salesService := sales.NewService(saleRepo, storeRepo, inventoryService, subscriptionService, txManager, outbox)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		Bundle:           bundle,
		Registry:         prometheus.NewRegistry(),
		Version:          version,
		ProductService:   productService,
		InventoryService: inventoryService,
		SalesService:     salesService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
