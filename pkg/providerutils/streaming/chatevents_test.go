package streaming

import (
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioTwoStreamingWithToolCall feeds the content events and
// tool-call fragments of spec §8 scenario 2 through ToolCallAccumulator and
// asserts the exact resulting ChatEvent sequence.
func TestScenarioTwoStreamingWithToolCall(t *testing.T) {
	acc := NewToolCallAccumulator()

	var events []types.ChatEvent
	events = append(events, types.ContentEvent("Let me "))
	events = append(events, types.ContentEvent("check."))

	startEvent, dense, ok := acc.Start(0, "t1", "lookup")
	require.True(t, ok)
	assert.Equal(t, 0, dense)
	events = append(events, startEvent)

	events = append(events, acc.Delta(0, `{"q":`))
	events = append(events, acc.Delta(0, `"x"}`))
	events = append(events, types.DoneEvent())

	expected := []types.ChatEvent{
		types.ContentEvent("Let me "),
		types.ContentEvent("check."),
		types.ToolCallStartEvent(0, "t1", "lookup"),
		types.ToolCallDeltaEvent(0, `{"q":`),
		types.ToolCallDeltaEvent(0, `"x"}`),
		types.DoneEvent(),
	}
	assert.Equal(t, expected, events)
}

func TestToolCallAccumulatorRemapsNonZeroProviderIndices(t *testing.T) {
	acc := NewToolCallAccumulator()

	_, dense0, ok := acc.Start(5, "a", "toolA")
	require.True(t, ok)
	assert.Equal(t, 0, dense0)

	_, dense1, ok := acc.Start(2, "b", "toolB")
	require.True(t, ok)
	assert.Equal(t, 1, dense1)

	acc.Delta(5, "frag1")
	acc.Delta(2, "frag2")

	calls := acc.ToolCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "a", calls[0].ID)
	assert.Equal(t, "frag1", calls[0].Arguments)
	assert.Equal(t, "b", calls[1].ID)
	assert.Equal(t, "frag2", calls[1].Arguments)
}

func TestToolCallAccumulatorStartIsIdempotent(t *testing.T) {
	acc := NewToolCallAccumulator()
	_, _, ok := acc.Start(0, "a", "toolA")
	require.True(t, ok)
	_, _, ok = acc.Start(0, "ignored", "ignored")
	assert.False(t, ok)
}

func TestCollapseResponseConcatenatesAndAssemblesToolCalls(t *testing.T) {
	usage := types.Usage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12}
	events := []types.ChatEvent{
		types.ContentEvent("Let me "),
		types.ContentEvent("check."),
		types.ToolCallStartEvent(0, "t1", "lookup"),
		types.ToolCallDeltaEvent(0, `{"q":`),
		types.ToolCallDeltaEvent(0, `"x"}`),
		types.ModelEvent("anthropic/claude-sonnet-4"),
		types.UsageEvent(usage),
		types.DoneEvent(),
	}

	resp := CollapseResponse(events, types.FinishReasonToolCalls)
	assert.Equal(t, "Let me check.", resp.Content)
	assert.Equal(t, "anthropic/claude-sonnet-4", resp.Model)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "t1", resp.ToolCalls[0].ID)
	assert.Equal(t, `{"q":"x"}`, resp.ToolCalls[0].Arguments)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, usage, *resp.Usage)
	assert.Equal(t, types.FinishReasonToolCalls, resp.FinishReason)
}
