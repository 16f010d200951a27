package credentials

import (
	"context"
	"fmt"

	"github.com/midpointplace/midpoint/internal/client/storage"
	"github.com/midpointplace/midpoint/internal/common"
)

// RedirectStore remembers where the user was headed before the guard sent
// them to the login page.
type RedirectStore struct {
	kv storage.Store
}

func NewRedirectStore(kv storage.Store) *RedirectStore {
	return &RedirectStore{kv: kv}
}

// Remember stores path, overwriting an earlier one.
func (s *RedirectStore) Remember(ctx context.Context, path string) error {
	if err := s.kv.Set(ctx, common.RedirectStorageKey, path); err != nil {
		return fmt.Errorf("remember redirect: %w", err)
	}
	return nil
}

// Consume returns the stored path and deletes it.
func (s *RedirectStore) Consume(ctx context.Context) (string, bool, error) {
	path, ok, err := s.kv.Take(ctx, common.RedirectStorageKey)
	if err != nil {
		return "", false, fmt.Errorf("consume redirect: %w", err)
	}
	if path == "" {
		return "", false, nil
	}
	return path, ok, nil
}

// Peek returns the stored path without deleting it.
func (s *RedirectStore) Peek(ctx context.Context) (string, bool, error) {
	path, ok, err := s.kv.Get(ctx, common.RedirectStorageKey)
	if err != nil {
		return "", false, fmt.Errorf("peek redirect: %w", err)
	}
	return path, ok && path != "", nil
}
