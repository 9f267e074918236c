package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Client.BaseURL)
	assert.Equal(t, 10, cfg.Client.RequestTimeout)
	assert.Equal(t, 5000, cfg.Server.PortHTTP)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
client:
  base_url: http://notes.internal:8080
  rate_limit_rps: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "http://notes.internal:8080", cfg.Client.BaseURL)
	assert.Equal(t, 5, cfg.Client.RateLimitRPS)
	// ключи, отсутствующие в файле, берутся из дефолтов
	assert.Equal(t, 10, cfg.Client.RequestTimeout)
}

func TestLoad_ExpandsEnvWithDefaults(t *testing.T) {
	path := writeConfig(t, `
client:
  base_url: ${TEST_NOTES_URL:-http://fallback:5000}
server:
  port_http: ${TEST_NOTES_PORT:-7000}
`)

	t.Setenv("TEST_NOTES_URL", "")
	t.Setenv("TEST_NOTES_PORT", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://fallback:5000", cfg.Client.BaseURL)
	assert.Equal(t, 7000, cfg.Server.PortHTTP)

	t.Setenv("TEST_NOTES_URL", "https://notes.example.com")
	t.Setenv("TEST_NOTES_PORT", "9000")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example.com", cfg.Client.BaseURL)
	assert.Equal(t, 9000, cfg.Server.PortHTTP)
}

func TestLoad_PrefixedEnvOverride(t *testing.T) {
	t.Setenv("NOTES_CLIENT_BASE_URL", "http://from-env:1234")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:1234", cfg.Client.BaseURL)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	path := writeConfig(t, `
client:
  base_url: localhost
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.base_url")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "client: [unterminated")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v.ReadInConfig")
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("TEST_EXPAND_SET", "value")

	assert.Equal(t, "value", expandEnvWithDefaults("${TEST_EXPAND_SET:-other}"))
	assert.Equal(t, "other", expandEnvWithDefaults("${TEST_EXPAND_UNSET:-other}"))
	assert.Equal(t, "", expandEnvWithDefaults("${TEST_EXPAND_UNSET}"))
	assert.Equal(t, "http://value:80", expandEnvWithDefaults("http://${TEST_EXPAND_SET}:80"))
}
