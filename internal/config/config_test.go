package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "atelier.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
db:
  path: /data/atelier.db
auth:
  jwt_secret: file-secret
storage:
  endpoint: minio:9000
  bucket: documents
llm:
  model: gpt-4o-mini
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("ATELIER_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/data/atelier.db", cfg.DB.Path)
	require.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	require.Equal(t, "minio:9000", cfg.Storage.Endpoint)
	require.Equal(t, "documents", cfg.Storage.Bucket)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)

	// Defaults survive where the file is silent
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("ATELIER_CONFIG_PATH", path)
	t.Setenv("ATELIER_SERVER_PORT", "7070")
	t.Setenv("ATELIER_JWT_SECRET", "env-secret")
	t.Setenv("ATELIER_REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 2, cfg.Redis.DB)
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("ATELIER_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}
