package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/coffee-shop-service/internal/api/http"
	"github.com/spec-kit/coffee-shop-service/internal/api/http/handlers"
	"github.com/spec-kit/coffee-shop-service/internal/cache"
	"github.com/spec-kit/coffee-shop-service/internal/events"
	"github.com/spec-kit/coffee-shop-service/internal/observability"
	"github.com/spec-kit/coffee-shop-service/internal/persistence"
	"github.com/spec-kit/coffee-shop-service/internal/repository"
	"github.com/spec-kit/coffee-shop-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default command)",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	healthDeps := []handlers.Dependency{{Name: "postgres", Pinger: pg}}

	var snapshotCache service.MenuSnapshotCache
	if ttl := cfg.Cache.CatalogTTL(); ttl > 0 {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		snapshotCache = cache.NewMenuCache(redis.ClientHandle(), ttl)
		healthDeps = append(healthDeps, handlers.Dependency{Name: "redis", Pinger: redis})
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	pool := pg.PoolHandle()
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		MenuRepo:     repository.NewMenuRepository(pool),
		CategoryRepo: repository.NewCategoryRepository(pool),
		Cache:        snapshotCache,
		Logger:       logger,
		Metrics:      metrics,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  repository.NewOrderRepository(pool),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   repository.NewUserRepository(pool),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app, _ := httptransport.NewApp(httptransport.AppConfig{
		Name: cfg.App.Name,
		Routes: httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps...),
			Menu:   handlers.NewMenuHandler(catalogService),
			Orders: handlers.NewOrdersHandler(orderService),
			Users:  handlers.NewUsersHandler(authService),
		},
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		MaxBodyBytes:   cfg.App.MaxBodyBytes,
	})

	var metricsServer *http.Server
	if cfg.Metrics.Addr != "" {
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener stopped", zap.String("addr", cfg.Metrics.Addr), zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("failed to bind HTTP listener; set PORT to a free port",
				zap.String("addr", cfg.App.Addr()), zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	return nil
}
