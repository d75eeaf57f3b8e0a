// Package provider defines the capability-typed polymorphic interface every
// backend (remote HTTP API or local inference engine) implements, and the
// lazy pull-based stream abstraction streaming chat uses (spec §3, §9).
package provider

import (
	"context"

	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// Provider is the single polymorphic interface the gateway dispatches
// through. Concrete adapters are structs implementing it; a provider that
// does not support a given operation returns an Unsupported/NotImplemented
// error (never a transport error) rather than omitting the method — this
// keeps dispatch uniform and lets Capabilities() be the single source of
// truth for what a provider can do.
type Provider interface {
	// Name identifies the provider for routing, logging, and model-prefix
	// matching (e.g. "anthropic", "openrouter").
	Name() string

	// Capabilities reports what this provider supports.
	Capabilities() types.Capabilities

	Chat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error)
	ChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (ChatStream, error)
	Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (*types.GenerateResponse, error)

	Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error)
	EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error)

	InferNli(ctx context.Context, modelID, premise, hypothesis string) (*types.NliResult, error)
	ClassifyZeroShot(ctx context.Context, modelID, text string, labels []string) (*types.ClassifyResult, error)
	ClassifyStance(ctx context.Context, modelID, text, target string) (*types.ClassifyResult, error)

	CountTokens(ctx context.Context, modelID, text string) (int64, error)
}

// ChatStream is a lazy, finite, pull-based sequence of ChatEvents (spec
// §9: "expose streams as a lazy finite sequence abstraction"). Next
// advances one event at a time and returns io.EOF once the caller has
// consumed the terminal Done event (or the stream errored without one).
// Close releases the underlying network resources; it is always safe to
// call, including after Next has returned io.EOF.
type ChatStream interface {
	Next(ctx context.Context) (types.ChatEvent, error)
	Close() error
}

// Unimplemented is embedded by adapters to provide the default
// "unsupported" behavior for every operation (§4.2: "adapters MUST...
// decline capabilities they do not implement by returning Unsupported").
// Adapters override only the methods their Capabilities() advertises.
type Unimplemented struct {
	ProviderName string
}

func (u Unimplemented) Chat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".Chat")
}

func (u Unimplemented) ChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (ChatStream, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".ChatStream")
}

func (u Unimplemented) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (*types.GenerateResponse, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".Generate")
}

func (u Unimplemented) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".Embed")
}

func (u Unimplemented) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".EmbedBatch")
}

func (u Unimplemented) InferNli(ctx context.Context, modelID, premise, hypothesis string) (*types.NliResult, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".InferNli")
}

func (u Unimplemented) ClassifyZeroShot(ctx context.Context, modelID, text string, labels []string) (*types.ClassifyResult, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".ClassifyZeroShot")
}

func (u Unimplemented) ClassifyStance(ctx context.Context, modelID, text, target string) (*types.ClassifyResult, error) {
	return nil, errors.NewNotImplementedError(u.ProviderName + ".ClassifyStance")
}

func (u Unimplemented) CountTokens(ctx context.Context, modelID, text string) (int64, error) {
	return 0, errors.NewNotImplementedError(u.ProviderName + ".CountTokens")
}
