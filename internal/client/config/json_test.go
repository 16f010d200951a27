package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":    "https://staging.midpoint.place/v1",
		"request_timeout": "10s",
		"database_path":   "/var/lib/midpoint.db",
	})

	t.Run("overlays present keys only", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{StorageBackend: StorageSQLite, LogLevel: "info"}
		parseJson(cfg)

		assert.Equal(t, "https://staging.midpoint.place/v1", cfg.APIBaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "/var/lib/midpoint.db", cfg.DatabasePath)
		assert.Equal(t, StorageSQLite, cfg.StorageBackend)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no file, no changes", func(t *testing.T) {
		t.Setenv("MIDPOINT_CONFIG", "")
		os.Args = []string{"testbin"}

		cfg := &Config{APIBaseURL: "defaults"}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.APIBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
