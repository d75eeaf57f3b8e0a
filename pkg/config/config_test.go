package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen = "127.0.0.1:9000"
max_concurrent_requests = 32

[anthropic]
base_url = "https://example.test"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, 32, cfg.MaxConcurrentRequests)
	assert.Equal(t, "https://example.test", cfg.Anthropic.BaseURL)
}

func TestLoadConfigExplicitPathMissingIsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadConfigNoneFoundReturnsZeroValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Listen)
}

func TestLoadSecretsRefusesWrongPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte(`anthropic_api_key = "sk-ant-test"`), 0o644))

	_, err := LoadSecrets(path)
	require.Error(t, err)
}

func TestLoadSecretsAcceptsMode0600(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte(`anthropic_api_key = "sk-ant-test"`), 0o600))

	secrets, err := LoadSecrets(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-test", secrets.AnthropicAPIKey)
}

func TestLoadSecretsNoneFoundReturnsZeroValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	secrets, err := LoadSecrets("")
	require.NoError(t, err)
	assert.Equal(t, "", secrets.AnthropicAPIKey)
}
