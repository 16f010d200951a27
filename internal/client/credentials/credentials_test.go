package credentials

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/midpointplace/midpoint/internal/client/storage"
	"github.com/midpointplace/midpoint/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKV(t *testing.T) storage.Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	s := storage.NewSQLiteStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// failingKV fails every call.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error)  { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error          { return f.err }
func (f failingKV) Delete(context.Context, string) error               { return f.err }
func (f failingKV) Take(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Close() error                                       { return nil }

func TestTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(newKV(t), logging.Discard())

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "T"))
	tok, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T", tok)
	assert.Equal(t, "T", s.Token(ctx))

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.Token(ctx))

	require.NoError(t, s.Clear(ctx), "clearing twice is fine")
}

func TestTokenStore_SaveEmptyRejected(t *testing.T) {
	s := NewTokenStore(newKV(t), logging.Discard())
	require.ErrorIs(t, s.Save(context.Background(), ""), ErrEmptyToken)
}

func TestTokenStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	var logs bytes.Buffer
	s := NewTokenStore(failingKV{err: boom}, logging.New(&logs, "text", "info"))

	_, _, err := s.Load(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Save(ctx, "x"), boom)
	require.ErrorIs(t, s.Clear(ctx), boom)
	assert.Empty(t, logs.String())

	assert.Empty(t, s.Token(ctx))
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "disk gone")
}

func TestRedirectStore_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	s := NewRedirectStore(newKV(t))

	require.NoError(t, s.Remember(ctx, "/groups/abc123"))

	p, ok, err := s.Peek(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/groups/abc123", p)

	p, ok, err = s.Consume(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/groups/abc123", p)

	_, ok, err = s.Consume(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedirectStore_LastRememberWins(t *testing.T) {
	ctx := context.Background()
	s := NewRedirectStore(newKV(t))

	require.NoError(t, s.Remember(ctx, "/create_group"))
	require.NoError(t, s.Remember(ctx, "/groups/xyz"))

	p, _, err := s.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/groups/xyz", p)
}

func TestRedirectStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	s := NewRedirectStore(failingKV{err: boom})

	require.ErrorIs(t, s.Remember(ctx, "/x"), boom)
	_, _, err := s.Consume(ctx)
	require.ErrorIs(t, err, boom)
	_, _, err = s.Peek(ctx)
	require.ErrorIs(t, err, boom)
}
