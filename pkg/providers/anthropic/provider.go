// Package anthropic adapts Anthropic's Messages API to the provider.Provider
// interface: Chat, ChatStream, Generate, and ToolUse over Claude models.
// Anthropic does not expose embeddings, NLI, or classification endpoints, so
// those methods fall through to provider.Unimplemented.
package anthropic

import (
	"context"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

const (
	// DefaultBaseURL is the default Anthropic API base URL.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultAPIVersion is the Anthropic API version this adapter speaks.
	DefaultAPIVersion = "2023-06-01"

	// DefaultMaxTokens is sent when ChatOptions.MaxTokens is unset, since
	// Anthropic requires max_tokens on every request.
	DefaultMaxTokens = 4096
)

// Config configures the Anthropic provider.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion string
}

// Provider implements provider.Provider for Anthropic.
type Provider struct {
	provider.Unimplemented
	client *httpclient.Client
}

var _ provider.Provider = (*Provider)(nil)

// New creates a new Anthropic provider.
func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	client := httpclient.NewClient(httpclient.Config{
		BaseURL: baseURL,
		Headers: map[string]string{
			"x-api-key":         cfg.APIKey,
			"anthropic-version": apiVersion,
		},
	})

	return &Provider{
		Unimplemented: provider.Unimplemented{ProviderName: "anthropic"},
		client:        client,
	}
}

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Capabilities() types.Capabilities {
	return types.NewCapabilities(
		types.CapChat,
		types.CapChatStreaming,
		types.CapGenerate,
		types.CapToolUse,
	)
}

func (p *Provider) Chat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	return p.doChat(ctx, messages, opts)
}

func (p *Provider) ChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (provider.ChatStream, error) {
	return p.doChatStream(ctx, messages, opts)
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (*types.GenerateResponse, error) {
	return p.doChat(ctx, []types.Message{types.NewUserMessage(prompt)}, opts)
}
