// Package storage is the durable key-value layer the client keeps its
// session state in: a handful of string keys that survive restarts.
package storage

import (
	"context"
	"fmt"

	"github.com/midpointplace/midpoint/internal/client/config"
	"github.com/midpointplace/midpoint/internal/filex"
)

// Store is a durable string key-value store.
//
// Get and Take report whether the key was present; a missing key is not an
// error. Take removes the key in the same step it reads it.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Take(ctx context.Context, key string) (string, bool, error)
	Close() error
}

// Open builds the Store selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite, "":
		if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		db, err := InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("storage: init sqlite: %w", err)
		}
		return NewSQLiteStore(db), nil
	case config.StorageRedis:
		return DialRedis(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}
