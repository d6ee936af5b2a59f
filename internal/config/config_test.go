package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 100.0, cfg.Server.RateLimit.RPS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data", cfg.Paths.DataDir)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
logging:
  level: debug
paths:
  data_dir: /var/lib/andinabi/data
`), 0644))
	t.Setenv("ANDINA_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/var/lib/andinabi/data", cfg.Paths.DataDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("ANDINA_CONFIG", path)
	t.Setenv("ANDINA_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad port", yaml: "server:\n  port: 0\n"},
		{name: "bad level", yaml: "logging:\n  level: verbose\n"},
		{name: "bad output", yaml: "logging:\n  output: syslog\n"},
		{name: "empty data dir", yaml: "paths:\n  data_dir: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			t.Setenv("ANDINA_CONFIG", path)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ReportsDir = filepath.Join(base, "reports")
	cfg.Paths.LogsDir = filepath.Join(base, "logs")

	require.NoError(t, cfg.EnsureDirectories())

	assert.DirExists(t, cfg.Paths.ReportsDir)
	assert.DirExists(t, cfg.Paths.LogsDir)
	// Data is input, never created.
	assert.NoDirExists(t, cfg.Paths.DataDir)
}
