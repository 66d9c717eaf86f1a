package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-board/internal/config"
)

// Open builds the store selected by cfg.StoreDriver. Networked backends come
// wrapped in a circuit breaker.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		s, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	var (
		s   Store
		err error
	)
	switch cfg.StoreDriver {
	case DriverMySQL:
		s, err = NewMySQL(ctx, cfg.MySQLDSN)
	case DriverPostgres:
		s, err = NewPostgres(ctx, cfg.DatabaseURL)
	case DriverRedis:
		s, err = NewRedis(ctx, cfg.RedisURL, cfg.Namespace)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	return NewBreaker(s, BreakerConfig{
		Name:             cfg.StoreDriver,
		FailureThreshold: cfg.BreakerFailures,
		Timeout:          cfg.BreakerTimeout,
	}, logger), nil
}
