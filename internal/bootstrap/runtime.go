// Package bootstrap wires runtime dependencies for the command binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	Tracing bool
}

// Runtime holds the initialized shared dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	tracingShutdown func(context.Context) error
}

// InitRuntime connects the database and Redis, installs the auth middleware
// configuration and optionally starts the tracer provider.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; the app degrades
	// gracefully without it.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	middleware.InitMiddleware(cfg)

	rt := &Runtime{DB: db, Redis: r}

	if opts.Tracing && cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:    "skillswap-api",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        cfg.TracingEnabled,
			Exporter:       cfg.TracingExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   1,
		})
		if err != nil {
			return nil, fmt.Errorf("tracing init failed: %w", err)
		}
		rt.tracingShutdown = shutdown
	}

	return rt, nil
}

// Close releases runtime resources in reverse initialization order.
func (rt *Runtime) Close(ctx context.Context) {
	if rt.tracingShutdown != nil {
		if err := rt.tracingShutdown(ctx); err != nil {
			log.Printf("error shutting down tracing: %v", err)
		}
	}
	if rt.Redis != nil {
		if err := rt.Redis.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}
	if rt.DB != nil {
		if sqlDB, err := rt.DB.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}
}
