package openrouter

import (
	"context"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
	"github.com/emesal/ratatoskr/pkg/providerutils/prompt"
	"github.com/emesal/ratatoskr/pkg/providerutils/rawopts"
	"github.com/emesal/ratatoskr/pkg/providerutils/tool"
)

type openrouterToolCall struct {
	ID       string `json:"id"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openrouterResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string                `json:"content"`
			ToolCalls []openrouterToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
		TotalTokens      int64 `json:"total_tokens"`
	} `json:"usage"`
}

func buildRequestBody(modelID string, messages []types.Message, opts types.ChatOptions, stream bool) map[string]interface{} {
	body := map[string]interface{}{
		"model":    modelID,
		"stream":   stream,
		"messages": prompt.ToOpenAIMessages(messages),
	}
	if opts.MaxTokens != nil {
		body["max_tokens"] = *opts.MaxTokens
	}
	if opts.Temperature != nil {
		body["temperature"] = *opts.Temperature
	}
	if opts.TopP != nil {
		body["top_p"] = *opts.TopP
	}
	if opts.FrequencyPenalty != nil {
		body["frequency_penalty"] = *opts.FrequencyPenalty
	}
	if opts.PresencePenalty != nil {
		body["presence_penalty"] = *opts.PresencePenalty
	}
	if opts.Seed != nil {
		body["seed"] = *opts.Seed
	}
	if len(opts.Stop) > 0 {
		body["stop"] = opts.Stop
	}
	if len(opts.Tools) > 0 {
		body["tools"] = tool.ToOpenAIFormat(opts.Tools)
		if opts.ToolChoice != nil {
			body["tool_choice"] = tool.ToOpenAIToolChoice(opts.ToolChoice)
		}
	}
	if opts.ParallelToolCalls != nil {
		body["parallel_tool_calls"] = *opts.ParallelToolCalls
	}
	if opts.ResponseFormat != nil {
		rf := map[string]interface{}{"type": string(opts.ResponseFormat.Kind)}
		if opts.ResponseFormat.Kind == types.ResponseFormatJSONSchema && opts.ResponseFormat.Schema != nil {
			rf["json_schema"] = opts.ResponseFormat.Schema
		}
		body["response_format"] = rf
	}
	rawopts.Merge(body, opts.RawProviderOptions)
	return body
}

func (p *Provider) doChat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	if err := validateChatInputs(messages); err != nil {
		return nil, err
	}

	body := buildRequestBody(opts.Model, messages, opts, false)

	var resp openrouterResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/chat/completions",
		Body:   body,
	}, &resp); err != nil {
		return nil, httperror.Map("openrouter", err)
	}

	return convertResponse(resp), nil
}

func convertResponse(resp openrouterResponse) *types.ChatResponse {
	if len(resp.Choices) == 0 {
		return &types.ChatResponse{FinishReason: types.FinishReasonOther, ToolCalls: []types.ToolCall{}}
	}
	choice := resp.Choices[0]

	toolCalls := make([]types.ToolCall, 0, len(choice.Message.ToolCalls))
	for _, tc := range choice.Message.ToolCalls {
		toolCalls = append(toolCalls, types.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return &types.ChatResponse{
		Content:      choice.Message.Content,
		ToolCalls:    toolCalls,
		Model:        resp.Model,
		FinishReason: types.MapFinishReason(choice.FinishReason),
		Usage: &types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}

func validateChatInputs(messages []types.Message) error {
	if len(messages) == 0 {
		return providererrors.NewInvalidInputError("message list must not be empty", nil)
	}
	return nil
}
