// Package prompt converts the domain Message list into the wire shapes
// individual providers expect.
package prompt

import (
	"encoding/json"

	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// ToOpenAIMessages converts messages into the OpenAI-compatible chat
// completions wire format, used by the openrouter and ollama adapters.
func ToOpenAIMessages(messages []types.Message) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		entry := map[string]interface{}{
			"role":    string(msg.Role),
			"content": msg.Content.Text,
		}
		if msg.Name != "" {
			entry["name"] = msg.Name
		}
		if msg.Role == types.RoleTool {
			entry["tool_call_id"] = msg.ToolCallID
		}
		if len(msg.ToolCalls) > 0 {
			calls := make([]map[string]interface{}, len(msg.ToolCalls))
			for i, tc := range msg.ToolCalls {
				calls[i] = map[string]interface{}{
					"id":   tc.ID,
					"type": "function",
					"function": map[string]interface{}{
						"name":      tc.Name,
						"arguments": tc.Arguments,
					},
				}
			}
			entry["tool_calls"] = calls
		}
		result = append(result, entry)
	}
	return result
}

// ToAnthropicMessages converts messages into the Anthropic Messages API
// wire format. Anthropic handles the system prompt out-of-band
// (ExtractSystemMessage), so system messages are skipped here.
func ToAnthropicMessages(messages []types.Message) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == types.RoleSystem {
			continue
		}

		if msg.Role == types.RoleTool {
			result = append(result, map[string]interface{}{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type":        "tool_result",
						"tool_use_id": msg.ToolCallID,
						"content":     msg.Content.Text,
					},
				},
			})
			continue
		}

		entry := map[string]interface{}{"role": string(msg.Role)}
		if len(msg.ToolCalls) == 0 {
			entry["content"] = msg.Content.Text
		} else {
			blocks := make([]map[string]interface{}, 0, len(msg.ToolCalls)+1)
			if msg.Content.Text != "" {
				blocks = append(blocks, map[string]interface{}{"type": "text", "text": msg.Content.Text})
			}
			for _, tc := range msg.ToolCalls {
				blocks = append(blocks, map[string]interface{}{
					"type":  "tool_use",
					"id":    tc.ID,
					"name":  tc.Name,
					"input": rawJSONOrEmptyObject(tc.Arguments),
				})
			}
			entry["content"] = blocks
		}
		result = append(result, entry)
	}
	return result
}

// ExtractSystemMessage returns the concatenated text of every system
// message, for providers (Anthropic) that take the system prompt
// out-of-band rather than as a message.
func ExtractSystemMessage(messages []types.Message) string {
	var system string
	for _, msg := range messages {
		if msg.Role != types.RoleSystem {
			continue
		}
		if system != "" {
			system += "\n"
		}
		system += msg.Content.Text
	}
	return system
}

// ValidateMessages enforces the boundary behavior in spec §8: an empty
// message list is InvalidInput.
func ValidateMessages(messages []types.Message) error {
	if len(messages) == 0 {
		return errors.NewInvalidInputError("message list must not be empty", nil)
	}
	return nil
}

func rawJSONOrEmptyObject(raw string) interface{} {
	if raw == "" {
		return map[string]interface{}{}
	}
	return json.RawMessage(raw)
}
