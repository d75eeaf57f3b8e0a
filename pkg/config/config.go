// Package config loads ratd's TOML configuration and secrets files (spec
// §6): provider endpoints and the daemon's listen address from a plain
// config file, API keys from a separate, permission-checked secrets file.
// Both follow the same --flag -> $HOME -> /etc search order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultListenAddress is where ratd listens when Config.Listen is unset
// (§6).
const DefaultListenAddress = "127.0.0.1:9741"

// ProviderConfig is one provider's static configuration: its base URL
// override and (for OpenRouter) attribution headers. API keys live in
// Secrets, never here, so a config file is safe to commit or share.
type ProviderConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
	SiteURL string `toml:"site_url,omitempty"`
	AppName string `toml:"app_name,omitempty"`
}

// Config is the daemon's TOML configuration document.
type Config struct {
	// Listen is the address ratd's RPC server binds, e.g. "127.0.0.1:9741".
	Listen string `toml:"listen,omitempty"`

	// RegistryPath points at the model/preset registry JSON document
	// (pkg/registry.Document) to load at startup.
	RegistryPath string `toml:"registry_path,omitempty"`

	// MaxConcurrentRequests bounds in-flight RPC requests (§5). Zero means
	// use rpc.DefaultMaxConcurrentRequests.
	MaxConcurrentRequests int `toml:"max_concurrent_requests,omitempty"`

	// LogFormat selects "json" (default, production) or "console"
	// (development) zap encoding.
	LogFormat string `toml:"log_format,omitempty"`

	Anthropic   ProviderConfig `toml:"anthropic,omitempty"`
	OpenRouter  ProviderConfig `toml:"openrouter,omitempty"`
	HuggingFace ProviderConfig `toml:"huggingface,omitempty"`
	Ollama      ProviderConfig `toml:"ollama,omitempty"`
}

// Secrets is the credentials document, loaded from a file the daemon
// refuses to read unless it is mode 0600 (§6).
type Secrets struct {
	AnthropicAPIKey  string `toml:"anthropic_api_key,omitempty"`
	OpenRouterAPIKey string `toml:"openrouter_api_key,omitempty"`
	HFAPIKey         string `toml:"hf_api_key,omitempty"`
}

// searchPaths returns the load order for a file named name under
// ~/.ratatoskr and /etc/ratatoskr (§6).
func searchPaths(name string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".ratatoskr", name))
	}
	paths = append(paths, filepath.Join("/etc/ratatoskr", name))
	return paths
}

// resolvePath returns explicitPath if set, else the first existing path in
// searchPaths(name). Returns "" if nothing is found and explicitPath is
// empty: the daemon can still run on environment variables alone.
func resolvePath(explicitPath, name string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config: %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}
	for _, p := range searchPaths(name) {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// LoadConfig loads the daemon config following --config -> $HOME ->
// /etc order (§6). explicitPath is the --config flag value, or "" if
// unset. A missing config file (with explicitPath unset) is not an error:
// LoadConfig returns a zero-value Config so the daemon can run from
// environment variables and builder defaults alone.
func LoadConfig(explicitPath string) (*Config, error) {
	path, err := resolvePath(explicitPath, "config.toml")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadSecrets loads the secrets document following the same --flag ->
// $HOME -> /etc order, refusing to start if the resolved file exists but
// is not mode 0600 (§6): secrets on a shared filesystem must not be
// group- or world-readable.
func LoadSecrets(explicitPath string) (*Secrets, error) {
	path, err := resolvePath(explicitPath, "secrets.toml")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Secrets{}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		return nil, fmt.Errorf("config: %s must be mode 0600, got %04o", path, info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var secrets Secrets
	if err := toml.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &secrets, nil
}
