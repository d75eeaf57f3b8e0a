package anthropic

import (
	"encoding/json"
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertResponseTextOnly(t *testing.T) {
	resp := convertResponse(anthropicResponse{
		Content:    []anthropicContent{{Type: "text", Text: "hello there"}},
		Model:      "claude-sonnet-4-6",
		StopReason: "end_turn",
		Usage:      anthropicUsage{InputTokens: 10, OutputTokens: 3},
	})

	assert.Equal(t, "hello there", resp.Content)
	assert.Equal(t, "claude-sonnet-4-6", resp.Model)
	assert.Equal(t, types.FinishReasonStop, resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.EqualValues(t, 10, resp.Usage.PromptTokens)
	assert.EqualValues(t, 3, resp.Usage.CompletionTokens)
}

func TestConvertResponseWithToolUse(t *testing.T) {
	resp := convertResponse(anthropicResponse{
		Content: []anthropicContent{
			{Type: "text", Text: "Let me check."},
			{Type: "tool_use", ID: "t1", Name: "lookup", Input: map[string]interface{}{"q": "x"}},
		},
		Model:      "claude-sonnet-4-6",
		StopReason: "tool_use",
		Usage:      anthropicUsage{InputTokens: 20, OutputTokens: 8},
	})

	assert.Equal(t, "Let me check.", resp.Content)
	assert.Equal(t, types.FinishReasonToolCalls, resp.FinishReason)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "t1", resp.ToolCalls[0].ID)
	assert.Equal(t, "lookup", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"q":"x"}`, resp.ToolCalls[0].Arguments)
}

func TestBuildRequestBodyDefaultsMaxTokens(t *testing.T) {
	body := buildRequestBody("claude-sonnet-4-6", []types.Message{types.NewUserMessage("hi")}, types.ChatOptions{}, false)
	assert.Equal(t, int64(DefaultMaxTokens), body["max_tokens"])
	assert.Equal(t, false, body["stream"])
}

func TestBuildRequestBodyReasoningDisablesTemperature(t *testing.T) {
	temp := 0.7
	effort := types.ReasoningEffortHigh
	opts := types.ChatOptions{
		Temperature: &temp,
		Reasoning:   &types.ReasoningOptions{Effort: &effort},
	}
	body := buildRequestBody("claude-opus-4-6", []types.Message{types.NewUserMessage("hi")}, opts, false)
	_, hasTemp := body["temperature"]
	assert.False(t, hasTemp)
	require.NotNil(t, body["thinking"])
}

func TestValidateChatInputsRejectsEmptyMessages(t *testing.T) {
	err := validateChatInputs(nil)
	require.Error(t, err)
}

func TestBuildRequestBodyForwardsRawProviderOptions(t *testing.T) {
	opts := types.ChatOptions{
		RawProviderOptions: json.RawMessage(`{"top_k":7,"metadata":{"user_id":"u1"}}`),
	}
	body := buildRequestBody("claude-sonnet-4-6", []types.Message{types.NewUserMessage("hi")}, opts, false)
	assert.Equal(t, float64(7), body["top_k"])
	assert.Equal(t, map[string]interface{}{"user_id": "u1"}, body["metadata"])
}
