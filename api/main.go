package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/inventory-store/internal/config"
	"github.com/rogerio-castellano/inventory-store/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-store/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-store/internal/http/router"
	"github.com/rogerio-castellano/inventory-store/internal/logger"
	"github.com/rogerio-castellano/inventory-store/internal/redissvc"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"github.com/rogerio-castellano/inventory-store/internal/service"
	"golang.org/x/sync/errgroup"
)

// @title Inventory Store API
// @version 1.0
// @description REST API for listing products, adjusting stock and registering products in a JSON file store.
// @host localhost:3001
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repo.NewJSONFileStore(repo.JSONFileOptions{
		Path:        cfg.Store.Path,
		Policy:      repo.PathPolicy(cfg.Store.Policy),
		TempDir:     cfg.Store.TempDir,
		AtomicWrite: cfg.Store.AtomicWrite,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("could not open inventory store: %w", err)
	}

	var lock service.Locker
	if cfg.Store.Lock == "redis" {
		rs, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rs.Close()
		lock = rs.StoreLock(cfg.Redis.LockKey, cfg.Redis.LockTTL, cfg.Redis.LockRetry, log)
		log.Info("using redis store lock", "addr", cfg.Redis.Addr, "key", cfg.Redis.LockKey)
	}

	inventory := service.NewInventoryService(store, lock, service.Options{
		DegradeOnReadFault:       cfg.Store.OnReadFault == "degrade",
		DefaultLowStockThreshold: cfg.Inventory.DefaultLowStockThreshold,
		ZeroThresholdUsesDefault: cfg.Inventory.ZeroThresholdUsesDefault,
	}, log)
	handlers.SetInventoryService(inventory)
	handlers.SetLogger(log)

	var limiter *rl.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: router.NewRouter(router.Options{
			Logger:            log,
			AllowedOrigins:    cfg.CORS.AllowedOrigins,
			Limiter:           limiter,
			TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("✅ server running", "addr", srv.Addr, "data_file", store.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server failed to shut down gracefully: %w", err)
		}
		return nil
	})

	return g.Wait()
}
