// Command ratd is the gateway daemon: it builds a gateway.Gateway from
// whichever providers have credentials configured, and serves it over the
// framed RPC protocol (§6, §11).
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emesal/ratatoskr/pkg/config"
	"github.com/emesal/ratatoskr/pkg/gateway"
	"github.com/emesal/ratatoskr/pkg/providers/anthropic"
	"github.com/emesal/ratatoskr/pkg/providers/huggingface"
	"github.com/emesal/ratatoskr/pkg/providers/ollama"
	"github.com/emesal/ratatoskr/pkg/providers/openrouter"
	"github.com/emesal/ratatoskr/pkg/registry"
	"github.com/emesal/ratatoskr/pkg/rpc"
)

var (
	configPath string
	listenAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "ratd",
	Short:        "Ratatoskr model gateway daemon",
	SilenceUsage: true,
	RunE:         runDaemon,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (default: $HOME/.ratatoskr, then /etc/ratatoskr)")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "override the configured listen address")
}

func newLogger(format string) (*zap.Logger, error) {
	if format == "console" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	secrets, err := config.LoadSecrets("")
	if err != nil {
		return fmt.Errorf("loading secrets: %w", err)
	}

	logger, err := newLogger(cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	builder := gateway.NewBuilder().WithLogger(logger)

	if key := firstNonEmpty(secrets.AnthropicAPIKey, os.Getenv("ANTHROPIC_API_KEY")); key != "" {
		builder = builder.WithProvider("anthropic", anthropic.New(anthropic.Config{
			APIKey:  key,
			BaseURL: cfg.Anthropic.BaseURL,
		}))
		logger.Info("registered provider", zap.String("provider", "anthropic"))
	}

	if key := firstNonEmpty(secrets.OpenRouterAPIKey, os.Getenv("OPENROUTER_API_KEY")); key != "" {
		builder = builder.WithProvider("openrouter", openrouter.New(openrouter.Config{
			APIKey:  key,
			BaseURL: cfg.OpenRouter.BaseURL,
			SiteURL: cfg.OpenRouter.SiteURL,
			AppName: cfg.OpenRouter.AppName,
		}))
		logger.Info("registered provider", zap.String("provider", "openrouter"))
	}

	if key := firstNonEmpty(secrets.HFAPIKey, os.Getenv("HF_API_KEY")); key != "" {
		builder = builder.WithProvider("huggingface", huggingface.New(huggingface.Config{
			APIKey:  key,
			BaseURL: cfg.HuggingFace.BaseURL,
		}))
		logger.Info("registered provider", zap.String("provider", "huggingface"))
	}

	// Ollama needs no API key: it is registered whenever a base URL is set
	// in config.toml or OLLAMA_BASE_URL; the default localhost endpoint is
	// not probed.
	if cfg.Ollama.BaseURL != "" || os.Getenv("OLLAMA_BASE_URL") != "" {
		builder = builder.WithProvider("ollama", ollama.New(ollama.Config{
			BaseURL: firstNonEmpty(cfg.Ollama.BaseURL, os.Getenv("OLLAMA_BASE_URL")),
		}))
		logger.Info("registered provider", zap.String("provider", "ollama"))
	}

	if cfg.RegistryPath != "" {
		reg := registry.New()
		if err := reg.LoadFile(cfg.RegistryPath); err != nil {
			return fmt.Errorf("loading registry %s: %w", cfg.RegistryPath, err)
		}
		if err := reg.ValidatePresets(); err != nil {
			return fmt.Errorf("validating registry %s: %w", cfg.RegistryPath, err)
		}
		builder = builder.WithRegistry(reg)
		logger.Info("loaded registry", zap.String("path", cfg.RegistryPath))
	}

	gw, err := builder.Build()
	if err != nil {
		return fmt.Errorf("building gateway: %w", err)
	}

	addr := firstNonEmpty(listenAddr, cfg.Listen, config.DefaultListenAddress)
	maxConcurrent := cfg.MaxConcurrentRequests
	var serverOpts []rpc.ServerOption
	serverOpts = append(serverOpts, rpc.WithServerLogger(logger))
	if maxConcurrent > 0 {
		serverOpts = append(serverOpts, rpc.WithMaxConcurrentRequests(maxConcurrent))
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	logger.Info("ratd listening", zap.String("address", addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := rpc.NewServer(gw, serverOpts...)
	return server.Serve(ctx, ln)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
