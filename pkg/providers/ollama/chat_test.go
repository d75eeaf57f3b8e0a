package ollama

import (
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertResponseTextOnly(t *testing.T) {
	resp := ollamaResponse{Model: "llama3"}
	resp.Choices = append(resp.Choices, struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string           `json:"content"`
			ToolCalls []ollamaToolCall `json:"tool_calls"`
		} `json:"message"`
	}{FinishReason: "stop"})
	resp.Choices[0].Message.Content = "hi there"

	converted := convertResponse(resp)
	assert.Equal(t, "hi there", converted.Content)
	assert.Equal(t, types.FinishReasonStop, converted.FinishReason)
	assert.Empty(t, converted.ToolCalls)
}

func TestBuildRequestBodyIncludesTools(t *testing.T) {
	tools := []types.ToolDefinition{{Name: "lookup", Description: "d", Parameters: []byte(`{}`)}}
	body := buildRequestBody("llama3", []types.Message{types.NewUserMessage("hi")}, types.ChatOptions{Tools: tools}, false)
	require.NotNil(t, body["tools"])
}

func TestValidateChatInputsRejectsEmpty(t *testing.T) {
	err := validateChatInputs(nil)
	require.Error(t, err)
}

func TestCapabilitiesIncludeEmbed(t *testing.T) {
	p := New(Config{})
	assert.True(t, p.Capabilities().Has(types.CapEmbed))
	assert.True(t, p.Capabilities().Has(types.CapToolUse))
}
