// Package openrouter adapts OpenRouter's OpenAI-compatible chat completions
// API to the provider.Provider interface: Chat, ChatStream, Generate, and
// ToolUse across whichever upstream model OpenRouter routes the request to.
package openrouter

import (
	"context"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// DefaultBaseURL is the default OpenRouter API base URL.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Config configures the OpenRouter provider.
type Config struct {
	APIKey string
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	// SiteURL and AppName are sent as OpenRouter's optional attribution
	// headers (HTTP-Referer, X-Title) for the site-ranking dashboard.
	SiteURL string
	AppName string
}

// Provider implements provider.Provider for OpenRouter.
type Provider struct {
	provider.Unimplemented
	client *httpclient.Client
}

var _ provider.Provider = (*Provider)(nil)

// New creates a new OpenRouter provider.
func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
	}
	if cfg.SiteURL != "" {
		headers["HTTP-Referer"] = cfg.SiteURL
	}
	if cfg.AppName != "" {
		headers["X-Title"] = cfg.AppName
	}

	client := httpclient.NewClient(httpclient.Config{
		BaseURL: baseURL,
		Headers: headers,
	})

	return &Provider{
		Unimplemented: provider.Unimplemented{ProviderName: "openrouter"},
		client:        client,
	}
}

func (p *Provider) Name() string { return "openrouter" }

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
