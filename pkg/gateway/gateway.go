// Package gateway implements the embedded façade (spec §4.5): the single
// object a caller builds once and calls Chat/Embed/Generate/... on,
// regardless of how many providers are configured behind it. It resolves
// registry presets, applies their defaults, picks an adapter by the
// model string's provider prefix for chat/generate, and consults the
// capability router for embed/NLI/classify.
package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/registry"
	"github.com/emesal/ratatoskr/pkg/router"
)

// presetPrefix marks a model string as a registry preset reference rather
// than a literal provider:model id (§4.5).
const presetPrefix = "registry:"

// Gateway is the embedded façade. The zero value is not usable; build one
// with a Builder.
type Gateway struct {
	providers map[string]provider.Provider
	router    *router.Router
	registry  *registry.Registry
	logger    *zap.Logger
}

var _ provider.Provider = (*Gateway)(nil)

// Name identifies the gateway itself, distinct from any one adapter.
func (g *Gateway) Name() string { return "ratatoskr" }

// Capabilities is the union of every configured provider's capabilities,
// plus synthetic capabilities the gateway itself contributes: ChatStreaming
// if any chat-capable provider streams, TokenCounting if any provider
// reports it or a local inference provider is registered, and
// LocalInference if a local provider is registered with the router (§4.5).
func (g *Gateway) Capabilities() types.Capabilities {
	union := types.EmptyCapabilities()
	for _, p := range g.providers {
		union = union.Union(p.Capabilities())
	}

	if g.router != nil && g.router.Has(types.CapLocalInference) {
		union = union.Add(types.CapLocalInference)
		union = union.Add(types.CapTokenCounting)
	}
	return union
}

// ResolvePreset resolves a caller-supplied model string to a model id and
// optional default parameters (§4.5). A `registry:TIER/CAPABILITY` string
// resolves through the registry; any other string resolves to itself with
// no preset parameters, without touching the registry.
func (g *Gateway) ResolvePreset(modelString string) (types.ResolvedModel, error) {
	if !strings.HasPrefix(modelString, presetPrefix) {
		return types.ResolvedModel{ModelID: modelString}, nil
	}

	ref := strings.TrimPrefix(modelString, presetPrefix)
	tier, slot, ok := strings.Cut(ref, "/")
	if !ok || tier == "" || slot == "" {
		return types.ResolvedModel{}, errors.NewInvalidInputError(
			"invalid preset reference (expected registry:TIER/CAPABILITY): "+modelString, nil)
	}
	if g.registry == nil {
		return types.ResolvedModel{}, errors.NewInvalidInputError(
			"no registry configured for preset reference: "+modelString, nil)
	}
	entry, ok := g.registry.Preset(tier, slot)
	if !ok {
		return types.ResolvedModel{}, errors.NewInvalidInputError(
			"unknown preset: "+modelString, nil)
	}
	return types.ResolvedModel{ModelID: entry.ModelID, PresetParameters: entry.Parameters}, nil
}

// splitProviderModel parses a `provider:model` string, using a colon
// convention rather than a slash convention: OpenRouter model ids already
// contain slashes (e.g. "anthropic/claude-sonnet-4.6"), which a
// slash-prefix scheme would collide with.
func splitProviderModel(modelID string) (providerName, bareModel string, err error) {
	idx := strings.IndexByte(modelID, ':')
	if idx < 0 {
		return "", "", errors.NewInvalidInputError(
			fmt.Sprintf("invalid model string format (expected 'provider:model'): %s", modelID), nil)
	}
	return modelID[:idx], modelID[idx+1:], nil
}

// resolveChat resolves opts.Model (preset or literal), applies preset
// defaults, and returns the adapter to dispatch to plus options rewritten
// to carry the bare (provider-stripped) model id.
func (g *Gateway) resolveChat(opts types.ChatOptions) (provider.Provider, types.ChatOptions, error) {
	resolved, err := g.ResolvePreset(opts.Model)
	if err != nil {
		return nil, types.ChatOptions{}, err
	}

	merged := types.ApplyDefaults(opts, resolved.PresetParameters)
	merged.Model = resolved.ModelID

	providerName, bareModel, err := splitProviderModel(merged.Model)
	if err != nil {
		return nil, types.ChatOptions{}, err
	}
	p, ok := g.providers[providerName]
	if !ok {
		return nil, types.ChatOptions{}, errors.NewModelNotFoundError(merged.Model)
	}
	merged.Model = bareModel
	return p, merged, nil
}

// Chat dispatches to the resolved adapter and stamps a request id onto the
// response when the adapter didn't supply one of its own (§4.5: every
// response is traceable to a request id, whether the provider's API
// returned one or the gateway minted it locally).
func (g *Gateway) Chat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	p, resolved, err := g.resolveChat(opts)
	if err != nil {
		g.logger.Warn("chat resolution failed", zap.String("model", opts.Model), zap.Error(err))
		return nil, err
	}

	requestID := uuid.NewString()
	g.logger.Debug("dispatching chat",
		zap.String("provider", p.Name()),
		zap.String("model", resolved.Model),
		zap.String("request_id", requestID))

	resp, err := p.Chat(ctx, messages, resolved)
	if err != nil {
		return nil, err
	}
	if resp.RequestID == "" {
		resp.RequestID = requestID
	}
	return resp, nil
}

func (g *Gateway) ChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (provider.ChatStream, error) {
	p, resolved, err := g.resolveChat(opts)
	if err != nil {
		return nil, err
	}
	return p.ChatStream(ctx, messages, resolved)
}

func (g *Gateway) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (*types.GenerateResponse, error) {
	p, resolved, err := g.resolveChat(opts)
	if err != nil {
		return nil, err
	}
	return p.Generate(ctx, prompt, resolved)
}

// resolveRouted resolves modelID (preset or literal) to a bare model id for
// capability-routed operations (embed/NLI/classify), where dispatch is by
// capability rather than provider prefix; any provider prefix present is
// stripped since the router, not the prefix, selects the adapter.
func (g *Gateway) resolveRouted(modelID string) (string, error) {
	resolved, err := g.ResolvePreset(modelID)
	if err != nil {
		return "", err
	}
	bare := resolved.ModelID
	if idx := strings.IndexByte(bare, ':'); idx >= 0 {
		bare = bare[idx+1:]
	}
	return bare, nil
}

func (g *Gateway) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	bare, err := g.resolveRouted(modelID)
	if err != nil {
		return nil, err
	}
	return g.router.Embed(ctx, bare, input)
}

func (g *Gateway) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	bare, err := g.resolveRouted(modelID)
	if err != nil {
		return nil, err
	}
	return g.router.EmbedBatch(ctx, bare, inputs)
}

func (g *Gateway) InferNli(ctx context.Context, modelID, premise, hypothesis string) (*types.NliResult, error) {
	bare, err := g.resolveRouted(modelID)
	if err != nil {
		return nil, err
	}
	return g.router.InferNli(ctx, bare, premise, hypothesis)
}

func (g *Gateway) ClassifyZeroShot(ctx context.Context, modelID, text string, labels []string) (*types.ClassifyResult, error) {
	bare, err := g.resolveRouted(modelID)
	if err != nil {
		return nil, err
	}
	return g.router.ClassifyZeroShot(ctx, bare, text, labels)
}

func (g *Gateway) ClassifyStance(ctx context.Context, modelID, text, target string) (*types.ClassifyResult, error) {
	bare, err := g.resolveRouted(modelID)
	if err != nil {
		return nil, err
	}
	return g.router.ClassifyStance(ctx, bare, text, target)
}

func (g *Gateway) CountTokens(ctx context.Context, modelID, text string) (int64, error) {
	bare, err := g.resolveRouted(modelID)
	if err != nil {
		return 0, err
	}
	providerName, _, splitErr := splitProviderModel(modelID)
	if splitErr == nil {
		if p, ok := g.providers[providerName]; ok {
			return p.CountTokens(ctx, bare, text)
		}
	}
	if g.router.Has(types.CapLocalInference) {
		if p, ok := g.router.ProviderFor(types.CapLocalInference); ok {
			return p.CountTokens(ctx, bare, text)
		}
	}
	return 0, errors.NewNotImplementedError("CountTokens")
}

// Models returns every model registered in the gateway's registry, sorted
// by id. It is nil-safe: a gateway built without a registry reports no
// models rather than panicking.
func (g *Gateway) Models() []types.ModelMetadata {
	if g.registry == nil {
		return nil
	}
	return g.registry.List()
}

// ModelStatus reports whether id names a model the registry knows about.
func (g *Gateway) ModelStatus(id string) (types.ModelMetadata, bool) {
	if g.registry == nil {
		return types.ModelMetadata{}, false
	}
	return g.registry.Get(id)
}

// ProviderNames lists the adapters configured behind this gateway, for
// health reporting (§12 rat health).
func (g *Gateway) ProviderNames() []string {
	names := make([]string, 0, len(g.providers))
	for name := range g.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
