package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "pizza.db", cfg.DBPath)
	assert.Equal(t, EngineSQLite, cfg.Engine)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Sample)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{
		"--db", ":memory:",
		"--sample",
		"--engine", "memory",
		"--format", "json",
		"--redis-addr", "localhost:6379",
		"--cache-ttl", "30s",
	})
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.True(t, cfg.Sample)
	assert.Equal(t, EngineMemory, cfg.Engine)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.LastRun)

	cfg, err = Load([]string{"--last-run"})
	require.NoError(t, err)
	assert.True(t, cfg.LastRun)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PIZZA_ENGINE", "memory")
	t.Setenv("PIZZA_DATA_DIR", "/data/pizza")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, EngineMemory, cfg.Engine)
	assert.Equal(t, "/data/pizza", cfg.DataDir)
	assert.Equal(t, "collector:4317", cfg.OTelEndpoint)

	// Flags win over the environment.
	cfg, err = Load([]string{"--engine", "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, EngineSQLite, cfg.Engine)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"engine", []string{"--engine", "duckdb"}, `unknown engine "duckdb"`},
		{"format", []string{"--format", "xml"}, `unknown format "xml"`},
		{"sample and data dir", []string{"--sample", "--data-dir", "x"}, "mutually exclusive"},
		{"last run with import", []string{"--last-run", "--sample"}, "--last-run cannot be combined"},
		{"empty db", []string{"--db", ""}, "--db must not be empty"},
		{"unknown flag", []string{"--nope"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config:")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
