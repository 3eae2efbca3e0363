package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
storage:
  backend: sqlite
  path: fleet.db
metrics:
  prometheus_enabled: true
audit:
  backend: sqlite
  path: decisions.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, "fleet.db", cfg.Storage.Path)
	require.True(t, cfg.Metrics.PrometheusEnabled)
	require.Equal(t, ":9090", cfg.Metrics.PrometheusPort)
	require.Equal(t, "sqlite", cfg.Audit.Backend)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Storage.Backend)
	require.Equal(t, "jsonl", cfg.Audit.Backend)
	require.Equal(t, "decisions.log", cfg.Audit.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WW_STORAGE__BACKEND", "postgres")
	t.Setenv("WW_STORAGE__DSN", "postgres://fleet")
	path := writeConfig(t, "config.yaml", "storage:\n  backend: memory\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Storage.Backend)
	require.Equal(t, "postgres://fleet", cfg.Storage.DSN)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "config.yaml", "storage:\n  backend: redis\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRequiresPostgresDSN(t *testing.T) {
	path := writeConfig(t, "config.yaml", "storage:\n  backend: postgres\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	require.Error(t, err)
}
