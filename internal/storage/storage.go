package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no blob exists under the key.
// Stores treat it as "start empty", not as a failure.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists one opaque blob per key. Each logical table (tasks,
// history) is a single blob; store logic never depends on the backend.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver        string // "file", "redis" or "postgres"
	DataDir       string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open creates the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (BlobStore, error) {
	switch opts.Driver {
	case "", "file":
		return NewFileStore(opts.DataDir)
	case "redis":
		return NewRedisStore(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case "postgres":
		return NewPostgresStore(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
