// Package huggingface adapts the HuggingFace Inference API to the
// provider.Provider interface: Embed, NLI, and zero-shot classification
// (spec §4.2 "HuggingFace pattern" — single POST per call).
package huggingface

import (
	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// DefaultBaseURL is the default HuggingFace Inference API base URL.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// Config configures the HuggingFace provider.
type Config struct {
	APIKey  string
	BaseURL string
}

// Provider implements provider.Provider for HuggingFace.
type Provider struct {
	provider.Unimplemented
	client *httpclient.Client
}

var _ provider.Provider = (*Provider)(nil)

// New creates a new HuggingFace provider.
func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := httpclient.NewClient(httpclient.Config{
		BaseURL: baseURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
		},
	})

	return &Provider{
		Unimplemented: provider.Unimplemented{ProviderName: "huggingface"},
		client:        client,
	}
}

func (p *Provider) Name() string { return "huggingface" }

func (p *Provider) Capabilities() types.Capabilities {
	return types.HuggingFaceOnlyCapabilities()
}
