package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/midpointplace/midpoint/internal/client/storage"
	"github.com/midpointplace/midpoint/internal/common"
	"github.com/midpointplace/midpoint/internal/logging"
)

// ErrEmptyToken is returned by Save for an empty token.
var ErrEmptyToken = errors.New("empty token")

// TokenStore holds the single bearer token under common.TokenStorageKey.
type TokenStore struct {
	kv  storage.Store
	log logging.Logger
}

func NewTokenStore(kv storage.Store, log logging.Logger) *TokenStore {
	return &TokenStore{kv: kv, log: log.With("component", "credentials")}
}

// Load returns the persisted token, if any.
func (s *TokenStore) Load(ctx context.Context) (string, bool, error) {
	token, ok, err := s.kv.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", false, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, ok, nil
}

// Save persists token, replacing any previous one.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.kv.Set(ctx, common.TokenStorageKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, common.TokenStorageKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Token satisfies api.TokenSource. Storage errors are logged and read as
// "no token", so a broken store degrades to unauthenticated calls.
func (s *TokenStore) Token(ctx context.Context) string {
	token, _, err := s.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "token unreadable, sending request without credential", "error", err)
		return ""
	}
	return token
}
