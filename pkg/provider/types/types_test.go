package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageConstructors(t *testing.T) {
	msg := NewUserMessage("2+2?")
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "2+2?", msg.Content.Text)

	tool := NewToolMessage("call_1", "4")
	assert.Equal(t, RoleTool, tool.Role)
	assert.Equal(t, "call_1", tool.ToolCallID)
}

func TestApplyDefaultsFillsOnlyNilFields(t *testing.T) {
	temp := 0.3
	preset := &PresetParameters{Temperature: &temp}

	caller := ChatOptions{Model: "x"}
	resolved := ApplyDefaults(caller, preset)
	require.NotNil(t, resolved.Temperature)
	assert.Equal(t, 0.3, *resolved.Temperature)

	callerSet := 0.9
	caller2 := ChatOptions{Model: "x", Temperature: &callerSet}
	resolved2 := ApplyDefaults(caller2, preset)
	require.NotNil(t, resolved2.Temperature)
	assert.Equal(t, 0.9, *resolved2.Temperature)
}

func TestApplyDefaultsNilPresetIsNoop(t *testing.T) {
	caller := ChatOptions{Model: "x"}
	resolved := ApplyDefaults(caller, nil)
	assert.Equal(t, caller, resolved)
}

func TestCapabilitiesUnionCommutativeAndAssociative(t *testing.T) {
	a := ChatOnlyCapabilities()
	b := HuggingFaceOnlyCapabilities()

	ab := a.Union(b)
	ba := b.Union(a)
	assert.Equal(t, ab.List(), ba.List())

	c := LocalOnlyCapabilities()
	assert.Equal(t, ab.Union(c).List(), a.Union(b.Union(c)).List())

	for _, cap := range []Capability{CapChat, CapChatStreaming, CapGenerate, CapToolUse, CapEmbed, CapNli, CapClassify} {
		assert.True(t, ab.Has(cap), "expected union to contain %s", cap)
	}
	assert.False(t, ab.Has(CapTokenCounting))
	assert.False(t, ab.Has(CapLocalInference))
}

func TestCapabilitiesCanonicalJSON(t *testing.T) {
	caps := NewCapabilities(CapEmbed, CapChat)
	data, err := json.Marshal(caps)
	require.NoError(t, err)
	assert.JSONEq(t, `["chat","embed"]`, string(data))

	var roundTripped Capabilities
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, caps.List(), roundTripped.List())
}

func TestModelMetadataMergePreservesHandCuratedFields(t *testing.T) {
	ctx := int64(8192)
	existing := ModelMetadata{
		Info: ModelInfo{
			ID:           "m1",
			Provider:     "anthropic",
			Capabilities: ChatOnlyCapabilities(),
		},
		Parameters: map[string]any{"hand_curated": true},
	}
	existing.Info.ContextWindow = &ctx

	incoming := ModelMetadata{
		Info:       ModelInfo{ID: "m1", Provider: "anthropic"},
		Parameters: map[string]any{"fetched": "value"},
	}

	merged := existing.Merge(incoming)
	assert.Equal(t, true, merged.Parameters["hand_curated"])
	assert.Equal(t, "value", merged.Parameters["fetched"])
	require.NotNil(t, merged.Info.ContextWindow)
	assert.Equal(t, ctx, *merged.Info.ContextWindow)
}

func TestFinishReasonMapping(t *testing.T) {
	assert.Equal(t, FinishReasonStop, MapFinishReason("stop"))
	assert.Equal(t, FinishReasonLength, MapFinishReason("length"))
	assert.Equal(t, FinishReasonToolCalls, MapFinishReason("tool_calls"))
	assert.Equal(t, FinishReasonToolCalls, MapFinishReason("function_call"))
	assert.Equal(t, FinishReasonContentFilter, MapFinishReason("content_filter"))
	assert.Equal(t, FinishReasonOther, MapFinishReason("something_else"))
}
