package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcapi/internal/config"
)

var configVars = []string{"PORT", "GRPC_PORT", "LOG_LEVEL", "LOG_FORMAT", "HISTORY_DSN", "HISTORY_LIMIT", "SHUTDOWN_TIMEOUT"}

// clearEnv сбрасывает переменные конфигурации на время теста
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, ":10000", cfg.HTTPAddr())
	assert.Equal(t, "10001", cfg.GRPCPort)
	assert.Equal(t, ":10001", cfg.GRPCAddr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":memory:", cfg.HistoryDSN)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("GRPC_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvDisablesGRPC(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_PORT", "")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.GRPCPort)
	assert.Equal(t, "", cfg.GRPCAddr())
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "порт не число", key: "PORT", value: "abc"},
		{name: "порт вне диапазона", key: "PORT", value: "70000"},
		{name: "grpc порт не число", key: "GRPC_PORT", value: "x"},
		{name: "лимит истории не число", key: "HISTORY_LIMIT", value: "many"},
		{name: "нулевой лимит истории", key: "HISTORY_LIMIT", value: "0"},
		{name: "таймаут без единиц", key: "SHUTDOWN_TIMEOUT", value: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("PORT=12345\nLOG_LEVEL=warn\n"), 0o600))

	original := config.EnvFiles
	config.EnvFiles = []string{filepath.Join(dir, "missing.env"), filepath.Join(dir, "app.env")}
	t.Cleanup(func() { config.EnvFiles = original })

	// явно заданная переменная имеет приоритет над файлом
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "12345", cfg.Port)
	assert.Equal(t, "error", cfg.LogLevel)
}
