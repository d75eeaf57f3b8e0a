package router

import (
	"context"
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedProvider struct {
	provider.Unimplemented
	name string
}

func (s *stubEmbedProvider) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	return &types.EmbeddingResult{Embedding: []float64{1}}, nil
}

func newStub(name string) *stubEmbedProvider {
	return &stubEmbedProvider{Unimplemented: provider.Unimplemented{ProviderName: name}, name: name}
}

func TestFirstRegisteredWins(t *testing.T) {
	r := New()
	first := newStub("first")
	second := newStub("second")

	r.Register(types.CapEmbed, first)
	r.Register(types.CapEmbed, second)

	p, ok := r.ProviderFor(types.CapEmbed)
	require.True(t, ok)
	assert.Equal(t, first, p)
}

func TestRegisterOverrideReplaces(t *testing.T) {
	r := New()
	first := newStub("first")
	second := newStub("second")

	r.Register(types.CapEmbed, first)
	r.RegisterOverride(types.CapEmbed, second)

	p, ok := r.ProviderFor(types.CapEmbed)
	require.True(t, ok)
	assert.Equal(t, second, p)
}

func TestRouteAbsentCapabilityIsNotImplemented(t *testing.T) {
	r := New()
	_, err := r.InferNli(context.Background(), "model", "a", "b")
	require.Error(t, err)
	assert.True(t, providererrors.IsNotImplementedError(err))
}

func TestRouteDispatchesToRegisteredProvider(t *testing.T) {
	r := New()
	r.Register(types.CapEmbed, newStub("hf"))

	result, err := r.Embed(context.Background(), "model", "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, result.Embedding)
}

func TestHasReflectsRegistration(t *testing.T) {
	r := New()
	assert.False(t, r.Has(types.CapClassify))
	r.Register(types.CapClassify, newStub("hf"))
	assert.True(t, r.Has(types.CapClassify))
}
