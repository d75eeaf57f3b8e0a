package anthropic

import (
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/prompt"
	"github.com/emesal/ratatoskr/pkg/providerutils/rawopts"
	"github.com/emesal/ratatoskr/pkg/providerutils/tool"
)

// buildRequestBody builds an Anthropic /v1/messages request body from
// domain messages and chat options. Temperature and top_p are mutually
// exclusive on Anthropic's API and reasoning mode disables both, matching
// the /v1/messages contract.
func buildRequestBody(modelID string, messages []types.Message, opts types.ChatOptions, stream bool) map[string]interface{} {
	body := map[string]interface{}{
		"model":  modelID,
		"stream": stream,
	}

	body["messages"] = prompt.ToAnthropicMessages(messages)
	if system := prompt.ExtractSystemMessage(messages); system != "" {
		body["system"] = system
	}

	maxTokens := int64(DefaultMaxTokens)
	if opts.MaxTokens != nil {
		maxTokens = *opts.MaxTokens
	}
	body["max_tokens"] = maxTokens

	reasoning := opts.Reasoning != nil && opts.Reasoning.Effort != nil
	if !reasoning {
		if opts.Temperature != nil {
			body["temperature"] = *opts.Temperature
		}
		if opts.TopK != nil {
			body["top_k"] = *opts.TopK
		}
		if opts.TopP != nil && opts.Temperature == nil {
			body["top_p"] = *opts.TopP
		}
	} else {
		budget := int64(1024)
		if opts.Reasoning.MaxTokens != nil {
			budget = *opts.Reasoning.MaxTokens
		}
		body["thinking"] = map[string]interface{}{
			"type":          "enabled",
			"budget_tokens": budget,
		}
	}

	if len(opts.Stop) > 0 {
		body["stop_sequences"] = opts.Stop
	}

	if len(opts.Tools) > 0 {
		body["tools"] = tool.ToAnthropicFormat(opts.Tools)
		if opts.ToolChoice != nil {
			body["tool_choice"] = tool.ToAnthropicToolChoice(opts.ToolChoice)
		}
	}
	if opts.ParallelToolCalls != nil && !*opts.ParallelToolCalls {
		if existing, ok := body["tool_choice"].(map[string]interface{}); ok {
			existing["disable_parallel_tool_use"] = true
		} else {
			body["tool_choice"] = map[string]interface{}{"disable_parallel_tool_use": true}
		}
	}

	if opts.CachePrompt != nil && *opts.CachePrompt {
		body["cache_control"] = map[string]string{"type": "auto"}
	}

	rawopts.Merge(body, opts.RawProviderOptions)

	return body
}
