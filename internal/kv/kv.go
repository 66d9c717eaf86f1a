// Package kv holds the persistence stores the task board mirrors its state into.
// Every backend is a plain key-value medium: the board reads one key at startup
// and overwrites it wholesale after each change.
package kv

import (
	"context"
	"errors"
)

var ErrUnknownDriver = errors.New("unknown store driver")

type Store interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)
