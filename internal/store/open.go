package store

import (
	"context"
	"fmt"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Options struct {
	Driver   string
	Path     string // file driver
	DSN      string // sqlite driver
	RedisURL string
	RedisKey string
}

// Open builds the backend named by opts.Driver and wraps it in a DB.
func Open(ctx context.Context, opts Options) (*DB, error) {
	var (
		b   Backend
		err error
	)
	switch opts.Driver {
	case DriverFile, "":
		b = NewFileBackend(opts.Path)
	case DriverSQLite:
		b, err = OpenSQLite(opts.DSN)
	case DriverRedis:
		b, err = OpenRedis(ctx, opts.RedisURL, opts.RedisKey)
	case DriverMemory:
		b = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", opts.Driver, err)
	}
	return New(b), nil
}
