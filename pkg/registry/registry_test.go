package registry

import (
	"bytes"
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64p(f float64) *float64 { return &f }
func int64p(i int64) *int64       { return &i }

func modelMeta(id string, contextWindow int64) types.ModelMetadata {
	cw := contextWindow
	return types.ModelMetadata{
		Info: types.ModelInfo{
			ID:            id,
			Provider:      "anthropic",
			Capabilities:  types.ChatOnlyCapabilities(),
			ContextWindow: &cw,
		},
	}
}

func TestGetAndListSortedByID(t *testing.T) {
	r := New()
	r.Merge(modelMeta("zeta", 1000))
	r.Merge(modelMeta("alpha", 2000))

	_, ok := r.Get("missing")
	assert.False(t, ok)

	m, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", m.Info.ID)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Info.ID)
	assert.Equal(t, "zeta", list[1].Info.ID)
}

func TestMergePreservesUnsetFieldsAndOverwritesSet(t *testing.T) {
	r := New()
	r.Merge(types.ModelMetadata{
		Info:       types.ModelInfo{ID: "m1", Provider: "anthropic"},
		Parameters: map[string]any{"top_p": 0.9},
		Pricing:    &types.Pricing{PromptPerMTok: float64p(3)},
	})

	r.Merge(types.ModelMetadata{
		Info:       types.ModelInfo{ID: "m1", Provider: "anthropic"},
		Parameters: map[string]any{"top_k": 40},
	})

	m, ok := r.Get("m1")
	require.True(t, ok)
	assert.Equal(t, 0.9, m.Parameters["top_p"])
	assert.Equal(t, 40, m.Parameters["top_k"])
	require.NotNil(t, m.Pricing)
	assert.Equal(t, 3.0, *m.Pricing.PromptPerMTok)
}

func TestSetPresetAndPreset(t *testing.T) {
	r := New()
	r.Merge(modelMeta("claude-sonnet-4-6", 200000))
	r.SetPreset("budget", "agentic", types.PresetEntry{ModelID: "claude-sonnet-4-6"})

	entry, ok := r.Preset("budget", "agentic")
	require.True(t, ok)
	assert.Equal(t, "claude-sonnet-4-6", entry.ModelID)

	_, ok = r.Preset("budget", "missing-slot")
	assert.False(t, ok)
}

func TestMergePresetsFullyReplacesSlot(t *testing.T) {
	r := New()
	r.SetPreset("budget", "agentic", types.PresetEntry{
		ModelID:    "m1",
		Parameters: &types.PresetParameters{Temperature: float64p(0.5)},
	})

	r.MergePresets(map[string]map[string]types.PresetEntry{
		"budget": {"agentic": {ModelID: "m2"}},
	})

	entry, ok := r.Preset("budget", "agentic")
	require.True(t, ok)
	assert.Equal(t, "m2", entry.ModelID)
	assert.Nil(t, entry.Parameters)
}

func TestValidatePresetsRejectsUnknownModel(t *testing.T) {
	r := New()
	r.SetPreset("budget", "agentic", types.PresetEntry{ModelID: "ghost"})

	err := r.ValidatePresets()
	require.Error(t, err)
}

func TestValidatePresetsAcceptsKnownModel(t *testing.T) {
	r := New()
	r.Merge(modelMeta("m1", 1000))
	r.SetPreset("budget", "agentic", types.PresetEntry{ModelID: "m1"})

	assert.NoError(t, r.ValidatePresets())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := New()
	r.Merge(modelMeta("m1", 128000))
	r.Merge(types.ModelMetadata{
		Info:            types.ModelInfo{ID: "m2", Provider: "ollama"},
		MaxOutputTokens: int64p(2048),
	})
	r.SetPreset("budget", "agentic", types.PresetEntry{ModelID: "m1"})
	r.SetPreset("premium", "reasoning", types.PresetEntry{
		ModelID:    "m2",
		Parameters: &types.PresetParameters{Temperature: float64p(0.2)},
	})

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))

	r2 := New()
	require.NoError(t, r2.Load(&buf))

	assert.Equal(t, r.List(), r2.List())

	entry, ok := r2.Preset("budget", "agentic")
	require.True(t, ok)
	assert.Equal(t, "m1", entry.ModelID)

	entry2, ok := r2.Preset("premium", "reasoning")
	require.True(t, ok)
	require.NotNil(t, entry2.Parameters)
	assert.Equal(t, 0.2, *entry2.Parameters.Temperature)
}

func TestLoadParsesLegacyBareStringPresets(t *testing.T) {
	raw := `{
		"version": 1,
		"models": [{"info": {"id": "m1", "provider": "anthropic"}}],
		"presets": {"budget": {"agentic": "m1"}}
	}`

	r := New()
	require.NoError(t, r.Load(bytes.NewBufferString(raw)))

	entry, ok := r.Preset("budget", "agentic")
	require.True(t, ok)
	assert.Equal(t, "m1", entry.ModelID)
	assert.Nil(t, entry.Parameters)
}

func TestSaveWritesBareStringForEmptyParameters(t *testing.T) {
	r := New()
	r.Merge(modelMeta("m1", 1000))
	r.SetPreset("budget", "agentic", types.PresetEntry{ModelID: "m1"})

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))
	assert.Contains(t, buf.String(), `"agentic": "m1"`)
}
