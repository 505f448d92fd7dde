package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/cache"
	"github.com/spec-kit/coffee-shop-service/internal/persistence"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations and drop the cached menu",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return err
		}
		defer pg.Close()
		if pg.PoolHandle() == nil {
			return errors.New("POSTGRES_DSN is required to run migrations")
		}

		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			return err
		}

		if ttl := cfg.Cache.CatalogTTL(); ttl > 0 {
			redis := persistence.NewRedis(ctx, cfg.Redis, logger)
			defer redis.Close()
			if err := cache.NewMenuCache(redis.ClientHandle(), ttl).Invalidate(ctx); err != nil {
				logger.Warn("menu cache not invalidated", zap.Error(err))
			}
		}
		return nil
	},
}
