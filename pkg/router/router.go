// Package router implements the static capability router (spec §4.3): for
// each capability it holds at most one provider, chosen when the gateway is
// built. Its dispatch methods cover Embed, Nli, Classify, and Stance; the
// gateway also asks it whether a provider is registered for other
// capabilities such as LocalInference. Chat and Generate bypass the router entirely —
// the gateway picks their adapter by matching options.model against the
// registered provider set (spec §4.5).
package router

import (
	"context"

	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// Router dispatches Embed/NLI/Classify calls to whichever provider was
// registered for that capability.
type Router struct {
	providers map[types.Capability]provider.Provider
}

// New builds an empty router.
func New() *Router {
	return &Router{providers: make(map[types.Capability]provider.Provider)}
}

// Register wires p as the handler for cap. The first registration for a
// capability wins; call RegisterOverride to replace it explicitly.
func (r *Router) Register(cap types.Capability, p provider.Provider) {
	if _, exists := r.providers[cap]; exists {
		return
	}
	r.providers[cap] = p
}

// RegisterOverride wires p as the handler for cap regardless of any prior
// registration (spec §4.3: "explicit override at build time replaces it").
func (r *Router) RegisterOverride(cap types.Capability, p provider.Provider) {
	r.providers[cap] = p
}

// Has reports whether a provider is routed for cap.
func (r *Router) Has(cap types.Capability) bool {
	_, ok := r.providers[cap]
	return ok
}

// ProviderFor returns the provider routed for cap, if any.
func (r *Router) ProviderFor(cap types.Capability) (provider.Provider, bool) {
	p, ok := r.providers[cap]
	return p, ok
}

func (r *Router) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	p, ok := r.providers[types.CapEmbed]
	if !ok {
		return nil, errors.NewNotImplementedError("Embed")
	}
	return p.Embed(ctx, modelID, input)
}

func (r *Router) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	p, ok := r.providers[types.CapEmbed]
	if !ok {
		return nil, errors.NewNotImplementedError("EmbedBatch")
	}
	return p.EmbedBatch(ctx, modelID, inputs)
}

func (r *Router) InferNli(ctx context.Context, modelID, premise, hypothesis string) (*types.NliResult, error) {
	p, ok := r.providers[types.CapNli]
	if !ok {
		return nil, errors.NewNotImplementedError("InferNli")
	}
	return p.InferNli(ctx, modelID, premise, hypothesis)
}

func (r *Router) ClassifyZeroShot(ctx context.Context, modelID, text string, labels []string) (*types.ClassifyResult, error) {
	p, ok := r.providers[types.CapClassify]
	if !ok {
		return nil, errors.NewNotImplementedError("ClassifyZeroShot")
	}
	return p.ClassifyZeroShot(ctx, modelID, text, labels)
}

func (r *Router) ClassifyStance(ctx context.Context, modelID, text, target string) (*types.ClassifyResult, error) {
	p, ok := r.providers[types.CapStance]
	if !ok {
		return nil, errors.NewNotImplementedError("ClassifyStance")
	}
	return p.ClassifyStance(ctx, modelID, text, target)
}
