package ollama

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

type ollamaToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type ollamaResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string           `json:"content"`
			ToolCalls []ollamaToolCall `json:"tool_calls"`
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
	if len(opts.Stop) > 0 {
		body["stop"] = opts.Stop
	}
	if len(opts.Tools) > 0 {
		body["tools"] = tool.ToOpenAIFormat(opts.Tools)
		if opts.ToolChoice != nil {
			body["tool_choice"] = tool.ToOpenAIToolChoice(opts.ToolChoice)
		}
	}
	if opts.ResponseFormat != nil {
		body["response_format"] = map[string]interface{}{"type": string(opts.ResponseFormat.Kind)}
	}
	rawopts.Merge(body, opts.RawProviderOptions)
	return body
}

func (p *Provider) doChat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	if err := validateChatInputs(messages); err != nil {
		return nil, err
	}

	body := buildRequestBody(opts.Model, messages, opts, false)

	var resp ollamaResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/chat/completions",
		Body:   body,
	}, &resp); err != nil {
		return nil, httperror.Map("ollama", err)
	}

	return convertResponse(resp), nil
}

func convertResponse(resp ollamaResponse) *types.ChatResponse {
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
