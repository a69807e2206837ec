package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/ferabensrl/mare-pedidos-backend/api/routes"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	"github.com/ferabensrl/mare-pedidos-backend/internal/orders"
	"github.com/ferabensrl/mare-pedidos-backend/internal/session"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/config"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/metrics"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := prometheus.NewRegistry()

	var closers []func() error
	closeAll := func() {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		if errs != nil {
			logg.Error(context.Background(), "error closing resources", errs)
		}
	}
	defer closeAll()

	cache, err := catalog.NewCache(cfg.Catalog.CachePath)
	if err != nil {
		logg.Error(ctx, "failed to open catalog cache", err)
		os.Exit(1)
	}
	closers = append(closers, cache.Close)

	fetcher, err := catalog.NewFetcher(cfg.Catalog)
	if err != nil {
		logg.Error(ctx, "failed to create catalog fetcher", err)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(fetcher, cache, metrics.NewCatalogMetrics(registry), logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	if err := catalogSvc.Refresh(ctx); err != nil {
		logg.Warn(ctx, "initial catalog refresh failed, serving cached snapshot if any")
	}
	go catalogSvc.Run(ctx, cfg.Catalog.RefreshInterval)

	var bridge session.Bridge
	var redisP redis.Pinger
	if cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		logg.Warn(ctx, "redis not configured, session state is process local")
		bridge = session.NewMemoryBridge()
	} else {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		bridge = session.NewRedisBridge(redisClient, cfg.Session.TTL)
		redisP = redisClient
	}

	sessions := session.NewManager(bridge, logg)

	orderSvc := orders.NewService(
		sessions,
		orders.NewComposer(orders.Limits{MaxChars: cfg.WhatsApp.MaxChars, TruncateAt: cfg.WhatsApp.TruncateAt}),
		orders.NewLinkBuilder(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Recipient),
		metrics.NewOrderMetrics(registry),
		logg,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	lctx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(lctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisP,
			catalogSvc,
			sessions,
			orderSvc,
			metrics.NewAPIMetrics(registry),
			registry,
		),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(lctx, "api server stopped unexpectedly", err)
			closeAll()
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(lctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(lctx, "error during server shutdown", err)
		}
	}
}
