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

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()

	t.Run("overlays present fields only", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{
			"api_base_url": "http://www.example:9000/api",
			"session_db":   "/var/lib/contacts.db",
			"ephemeral":    true,
			"log_format":   "json",
		})

		cfg := &Config{RequestTimeout: 42 * time.Second, LogLevel: "debug"}
		require.NoError(t, parseJSON(cfg, path))

		assert.Equal(t, "http://www.example:9000/api", cfg.APIBaseURL)
		assert.Equal(t, "/var/lib/contacts.db", cfg.SessionDB)
		assert.True(t, cfg.Ephemeral)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("duration as nanoseconds", func(t *testing.T) {
		path := writeTempJSON(t, dir, "nanos.json", map[string]any{"request_timeout": 1500000000})

		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, path))
		assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJSON(&Config{}, bad))
	})

	t.Run("invalid duration → error", func(t *testing.T) {
		path := writeTempJSON(t, dir, "dur.json", map[string]any{"request_timeout": "soon"})
		assert.Error(t, parseJSON(&Config{}, path))
	})

	t.Run("duration of wrong type → error", func(t *testing.T) {
		path := writeTempJSON(t, dir, "durtype.json", map[string]any{"request_timeout": true})
		assert.Error(t, parseJSON(&Config{}, path))
	})

	t.Run("missing file → error", func(t *testing.T) {
		assert.Error(t, parseJSON(&Config{}, filepath.Join(dir, "missing.json")))
	})
}
