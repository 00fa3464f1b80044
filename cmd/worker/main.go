// Package main is the entry point for the tokopos outbox relay worker.
// It drains the transactional outbox and publishes domain events to
// Kafka.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tokopos/internal/infrastructure/events"
	"tokopos/internal/infrastructure/storage/postgres"
	"tokopos/pkg/logger"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting tokopos outbox worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	publisher := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers: strings.Split(mustEnv("KAFKA_BROKERS"), ","),
		Topic:   getEnv("KAFKA_TOPIC", "tokopos.events"),
	})
	defer publisher.Close()

	relay := postgres.NewOutboxRelay(pool.Unwrap(), getEnvInt("OUTBOX_BATCH_SIZE", 100), publisher)
	worker := NewRelayWorker(relay, log, getEnvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// RelayWorker polls the outbox on a fixed interval and pushes pending
// batches through the Kafka publisher.
type RelayWorker struct {
	relay    *postgres.OutboxRelay
	log      *logger.Logger
	interval time.Duration
}

func NewRelayWorker(relay *postgres.OutboxRelay, log *logger.Logger, interval time.Duration) *RelayWorker {
	return &RelayWorker{
		relay:    relay,
		log:      log.WithComponent("outbox_relay"),
		interval: interval,
	}
}

// Run processes outbox batches until the context is cancelled. After a
// full batch it polls again immediately to drain backlogs quickly.
func (w *RelayWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				processed, err := w.relay.ProcessBatch(ctx)
				if err != nil {
					w.log.Errorw("outbox batch failed", "error", err)
					break
				}
				if processed > 0 {
					w.log.Infow("outbox batch published", "count", processed)
				}
				if processed == 0 || ctx.Err() != nil {
					break
				}
			}
		}
	}
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
