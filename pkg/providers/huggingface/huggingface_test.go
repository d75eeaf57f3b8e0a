package huggingface

import (
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
)

func TestParseEmbeddingResponseDirectArray(t *testing.T) {
	embedding, err := parseEmbeddingResponse([]byte(`[0.1, 0.2, 0.3]`))
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, embedding)
}

func TestParseEmbeddingResponseNestedArray(t *testing.T) {
	embedding, err := parseEmbeddingResponse([]byte(`[[0.1, 0.2]]`))
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, embedding)
}

func TestParseEmbeddingResponseError(t *testing.T) {
	_, err := parseEmbeddingResponse([]byte(`{"error": "model loading"}`))
	assert.Error(t, err)
}

func TestMapNliLabel(t *testing.T) {
	assert.Equal(t, types.NliEntailment, mapNliLabel("ENTAILMENT"))
	assert.Equal(t, types.NliContradiction, mapNliLabel("contradiction"))
	assert.Equal(t, types.NliNeutral, mapNliLabel("NEUTRAL"))
}

func TestCapabilitiesIsHuggingFaceOnly(t *testing.T) {
	p := New(Config{APIKey: "token"})
	caps := p.Capabilities()
	assert.True(t, caps.Has(types.CapEmbed))
	assert.True(t, caps.Has(types.CapNli))
	assert.True(t, caps.Has(types.CapClassify))
	assert.True(t, caps.Has(types.CapStance))
	assert.False(t, caps.Has(types.CapChat))
}
