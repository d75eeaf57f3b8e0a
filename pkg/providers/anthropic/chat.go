package anthropic

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
	"github.com/emesal/ratatoskr/pkg/providerutils/streaming"
)

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicContent struct {
	Type  string                 `json:"type"`
	Text  string                 `json:"text,omitempty"`
	ID    string                 `json:"id,omitempty"`
	Name  string                 `json:"name,omitempty"`
	Input map[string]interface{} `json:"input,omitempty"`
}

type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	Model      string             `json:"model"`
	StopReason string             `json:"stop_reason"`
	Usage      anthropicUsage     `json:"usage"`
}

func (p *Provider) doChat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	if err := validateChatInputs(messages); err != nil {
		return nil, err
	}

	body := buildRequestBody(opts.Model, messages, opts, false)

	var resp anthropicResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/messages",
		Body:   body,
	}, &resp); err != nil {
		return nil, mapTransportError(err)
	}

	return convertResponse(resp), nil
}

func convertResponse(resp anthropicResponse) *types.ChatResponse {
	events := make([]types.ChatEvent, 0, len(resp.Content)+2)
	acc := streaming.NewToolCallAccumulator()
	toolIndex := 0

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			events = append(events, types.ContentEvent(block.Text))
		case "tool_use":
			startEvent, dense, ok := acc.Start(toolIndex, block.ID, block.Name)
			toolIndex++
			if ok {
				events = append(events, startEvent)
				args := "{}"
				if len(block.Input) > 0 {
					if b, err := json.Marshal(block.Input); err == nil {
						args = string(b)
					}
				}
				events = append(events, acc.Delta(dense, args))
			}
		}
	}
	events = append(events, types.ModelEvent(resp.Model))
	events = append(events, types.UsageEvent(types.Usage{
		PromptTokens:     int64(resp.Usage.InputTokens),
		CompletionTokens: int64(resp.Usage.OutputTokens),
		TotalTokens:      int64(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}))
	events = append(events, types.DoneEvent())

	chatResp := streaming.CollapseResponse(events, mapStopReason(resp.StopReason))
	return &chatResp
}

func mapStopReason(stopReason string) types.FinishReason {
	return types.MapFinishReason(stopReason)
}

func mapTransportError(err error) error {
	return httperror.Map("anthropic", err)
}

func validateChatInputs(messages []types.Message) error {
	if len(messages) == 0 {
		return providererrors.NewInvalidInputError("message list must not be empty", nil)
	}
	return nil
}
