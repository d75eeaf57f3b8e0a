// Package tool converts domain ToolDefinition/ToolChoice values into the
// wire formats the OpenAI-compatible and Anthropic provider adapters send.
package tool

import (
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// ToOpenAIFormat converts tool definitions to the OpenAI-compatible
// function-calling format used by openrouter and ollama.
func ToOpenAIFormat(tools []types.ToolDefinition) []map[string]interface{} {
	result := make([]map[string]interface{}, len(tools))
	for i, t := range tools {
		result[i] = map[string]interface{}{
			"type": "function",
			"function": map[string]interface{}{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Parameters,
			},
		}
	}
	return result
}

// ToAnthropicFormat converts tool definitions to Anthropic's tool format.
func ToAnthropicFormat(tools []types.ToolDefinition) []map[string]interface{} {
	result := make([]map[string]interface{}, len(tools))
	for i, t := range tools {
		result[i] = map[string]interface{}{
			"name":         t.Name,
			"description":  t.Description,
			"input_schema": t.Parameters,
		}
	}
	return result
}

// ToOpenAIToolChoice converts a ToolChoice to the OpenAI-compatible wire
// value.
func ToOpenAIToolChoice(choice *types.ToolChoice) interface{} {
	if choice == nil {
		return nil
	}
	switch choice.Kind {
	case types.ToolChoiceAuto:
		return "auto"
	case types.ToolChoiceNone:
		return "none"
	case types.ToolChoiceRequired:
		return "required"
	case types.ToolChoiceFunction:
		return map[string]interface{}{
			"type":     "function",
			"function": map[string]interface{}{"name": choice.Name},
		}
	default:
		return "auto"
	}
}

// ToAnthropicToolChoice converts a ToolChoice to Anthropic's wire value.
// Anthropic has no explicit "none"; callers should omit tools entirely to
// get that effect, which the caller (not this converter) is responsible
// for doing.
func ToAnthropicToolChoice(choice *types.ToolChoice) interface{} {
	if choice == nil {
		return nil
	}
	switch choice.Kind {
	case types.ToolChoiceAuto:
		return map[string]interface{}{"type": "auto"}
	case types.ToolChoiceRequired:
		return map[string]interface{}{"type": "any"}
	case types.ToolChoiceFunction:
		return map[string]interface{}{"type": "tool", "name": choice.Name}
	default:
		return map[string]interface{}{"type": "auto"}
	}
}
