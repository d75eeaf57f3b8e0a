package openrouter

import (
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertResponseWithToolCalls(t *testing.T) {
	resp := openrouterResponse{Model: "anthropic/claude-sonnet-4.6"}
	choice := struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string                `json:"content"`
			ToolCalls []openrouterToolCall `json:"tool_calls"`
		} `json:"message"`
	}{FinishReason: "tool_calls"}
	choice.Message.ToolCalls = []openrouterToolCall{{ID: "t1"}}
	choice.Message.ToolCalls[0].Function.Name = "lookup"
	choice.Message.ToolCalls[0].Function.Arguments = `{"q":"x"}`
	resp.Choices = append(resp.Choices, choice)

	converted := convertResponse(resp)
	assert.Equal(t, types.FinishReasonToolCalls, converted.FinishReason)
	require.Len(t, converted.ToolCalls, 1)
	assert.Equal(t, "lookup", converted.ToolCalls[0].Name)
}

func TestBuildRequestBodyIncludesResponseFormat(t *testing.T) {
	rf := types.JSONObjectResponseFormat()
	opts := types.ChatOptions{ResponseFormat: &rf}
	body := buildRequestBody("openai/gpt-5", []types.Message{types.NewUserMessage("hi")}, opts, false)
	rfBody, ok := body["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_object", rfBody["type"])
}

func TestCapabilitiesOmitEmbed(t *testing.T) {
	p := New(Config{APIKey: "key"})
	assert.True(t, p.Capabilities().Has(types.CapChat))
	assert.False(t, p.Capabilities().Has(types.CapEmbed))
}
