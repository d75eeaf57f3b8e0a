package tool

import (
	"testing"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOpenAIFormat(t *testing.T) {
	tools := []types.ToolDefinition{
		{Name: "lookup", Description: "looks things up", Parameters: []byte(`{"type":"object"}`)},
	}

	formatted := ToOpenAIFormat(tools)
	require.Len(t, formatted, 1)
	assert.Equal(t, "function", formatted[0]["type"])

	fn, ok := formatted[0]["function"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "lookup", fn["name"])
	assert.Equal(t, "looks things up", fn["description"])
}

func TestToAnthropicFormat(t *testing.T) {
	tools := []types.ToolDefinition{
		{Name: "lookup", Description: "looks things up", Parameters: []byte(`{"type":"object"}`)},
	}

	formatted := ToAnthropicFormat(tools)
	require.Len(t, formatted, 1)
	assert.Equal(t, "lookup", formatted[0]["name"])
	assert.NotNil(t, formatted[0]["input_schema"])
}

func TestToOpenAIToolChoice(t *testing.T) {
	assert.Nil(t, ToOpenAIToolChoice(nil))

	auto := types.AutoToolChoice()
	assert.Equal(t, "auto", ToOpenAIToolChoice(&auto))

	fn := types.FunctionToolChoice("lookup")
	converted, ok := ToOpenAIToolChoice(&fn).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "function", converted["type"])
}

func TestToAnthropicToolChoice(t *testing.T) {
	required := types.RequiredToolChoice()
	converted, ok := ToAnthropicToolChoice(&required).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "any", converted["type"])
}
