// Package driver opens the campaign.Store selected by storage.driver.
package driver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/campaign"
	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/storage/memory"
	"github.com/cory-johannsen/campaign/internal/storage/postgres"
	"github.com/cory-johannsen/campaign/internal/storage/redis"
	"github.com/cory-johannsen/campaign/internal/storage/sqlite"
)

// Open connects the configured backend. The returned close func releases it
// and is never nil.
//
// Precondition: cfg must have passed Validate.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (campaign.Store, func() error, error) {
	noop := func() error { return nil }
	logger = logger.With(zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory store; nothing will persist")
		return memory.New(), noop, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("connected to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
		return postgres.NewStore(pool.DB()), func() error { pool.Close(); return nil }, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("opened sqlite store", zap.String("path", cfg.SQLite.Path))
		return s, s.Close, nil

	case config.DriverRedis:
		client := redis.NewClient(cfg.Redis)
		s := redis.NewStore(client, cfg.Redis.KeyPrefix)
		if err := s.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		return s, client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
