package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	accountapp "github.com/Anton1921980/order-management/internal/account/app"
	accountpg "github.com/Anton1921980/order-management/internal/account/infra/postgres"
	catalogapp "github.com/Anton1921980/order-management/internal/catalog/app"
	catalogpg "github.com/Anton1921980/order-management/internal/catalog/infra/postgres"
	"github.com/Anton1921980/order-management/internal/httpapi"
	orderapp "github.com/Anton1921980/order-management/internal/order/app"
	orderpg "github.com/Anton1921980/order-management/internal/order/infra/postgres"
	"github.com/Anton1921980/order-management/internal/ratelimit"
	"github.com/Anton1921980/order-management/internal/storage/memory"
	"github.com/Anton1921980/order-management/pkg/config"
	"github.com/Anton1921980/order-management/pkg/logger"
	"github.com/Anton1921980/order-management/pkg/postgres"
	"github.com/Anton1921980/order-management/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "order-management",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	handlers, closeStorage := buildHandlers(ctx, cfg, log)
	defer closeStorage()

	limiter := ratelimit.NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow, nil)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(handlers, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

// buildHandlers picks the storage backend from the process mode: test mode
// runs fully in memory, everything else requires Postgres.
func buildHandlers(ctx context.Context, cfg config.Config, log *slog.Logger) (*httpapi.Handlers, func()) {
	if cfg.IsTest() {
		log.Info("test mode: using in-memory storage")
		store := memory.New()
		return httpapi.NewHandlers(
			orderapp.NewService(store, store),
			accountapp.NewService(store),
			catalogapp.NewService(store),
		), func() {}
	}

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required outside test mode")
		os.Exit(1)
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error("db migrate failed", slog.Any("err", err))
		pool.Close()
		os.Exit(1)
	}

	orderRepo := orderpg.NewOrderRepo(pool, cfg.TxMaxAttempts, cfg.TxRetryBase)

	return httpapi.NewHandlers(
		orderapp.NewService(orderRepo, orderRepo),
		accountapp.NewService(accountpg.NewUserRepo(pool)),
		catalogapp.NewService(catalogpg.NewProductRepo(pool)),
	), pool.Close
}
