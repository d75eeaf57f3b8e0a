// Package ollama adapts a local Ollama instance's OpenAI-compatible API
// surface to the provider.Provider interface: Chat, ChatStream, Generate,
// ToolUse, and Embed.
package ollama

import (
	"context"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// DefaultBaseURL is the default local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Config configures the Ollama provider.
type Config struct {
	BaseURL string
}

// Provider implements provider.Provider for Ollama.
type Provider struct {
	provider.Unimplemented
	client *httpclient.Client
}

var _ provider.Provider = (*Provider)(nil)

// New creates a new Ollama provider.
func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := httpclient.NewClient(httpclient.Config{BaseURL: baseURL})

	return &Provider{
		Unimplemented: provider.Unimplemented{ProviderName: "ollama"},
		client:        client,
	}
}

func (p *Provider) Name() string { return "ollama" }

func (p *Provider) Capabilities() types.Capabilities {
	return types.NewCapabilities(
		types.CapChat,
		types.CapChatStreaming,
		types.CapGenerate,
		types.CapToolUse,
		types.CapEmbed,
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
