package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api/tarefas", cfg.Server.BasePath)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "stderr", cfg.Tracing.Output)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  read_timeout: 3s
storage:
  driver: postgres
  database_url: postgres://u:p@db:5432/tarefas
log:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/tarefas", cfg.Storage.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
metrics:
  enabled: true
tracing:
  output: stdout
`)
	t.Setenv("PORT", "7070")
	t.Setenv("TRACING_OUTPUT", "/var/log/tarefas/spans.json")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("STORAGE_DRIVER", "gorm")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DriverGorm, cfg.Storage.Driver)
	assert.Equal(t, "postgres://env", cfg.Storage.DatabaseURL)
	assert.Equal(t, "/var/log/tarefas/spans.json", cfg.Tracing.Output)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [1, 2"))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, "storage:\n  driver: mongo\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown storage.driver "mongo"`)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "server.port"},
		{name: "relative base path", mutate: func(c *Config) { c.Server.BasePath = "api" }, wantErr: "server.base_path"},
		{name: "zero body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: "max_body_bytes"},
		{name: "postgres without url", mutate: func(c *Config) {
			c.Storage.Driver = DriverPostgres
			c.Storage.DatabaseURL = ""
		}, wantErr: "storage.database_url"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.SQLitePath = "" }, wantErr: "storage.sqlite_path"},
		{name: "bad metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, wantErr: "metrics.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
