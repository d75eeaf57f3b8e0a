package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/streaming"
)

func (p *Provider) doChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (provider.ChatStream, error) {
	if err := validateChatInputs(messages); err != nil {
		return nil, err
	}

	body := buildRequestBody(opts.Model, messages, opts, true)

	httpResp, err := p.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/v1/messages",
		Body:    body,
		Headers: map[string]string{"Accept": "text/event-stream"},
	})
	if err != nil {
		return nil, mapTransportError(err)
	}

	return newAnthropicStream(httpResp.Body), nil
}

// anthropicStream decodes Anthropic's /v1/messages SSE stream into
// types.ChatEvent values, delegating index remapping and tool-call
// reassembly to streaming.ToolCallAccumulator.
type anthropicStream struct {
	body   io.ReadCloser
	parser *streaming.SSEParser
	acc    *streaming.ToolCallAccumulator
	// blockKind maps an Anthropic content_block index to its type ("text",
	// "tool_use") so content_block_delta knows how to interpret the delta.
	blockKind map[int]string
	done      bool
	err       error
}

func newAnthropicStream(body io.ReadCloser) *anthropicStream {
	return &anthropicStream{
		body:      body,
		parser:    streaming.NewSSEParser(body),
		acc:       streaming.NewToolCallAccumulator(),
		blockKind: make(map[int]string),
	}
}

func (s *anthropicStream) Close() error { return s.body.Close() }

func (s *anthropicStream) Next(ctx context.Context) (types.ChatEvent, error) {
	if s.err != nil {
		return types.ChatEvent{}, s.err
	}
	if s.done {
		return types.ChatEvent{}, io.EOF
	}

	for {
		event, err := s.parser.Next()
		if err != nil {
			s.err = err
			return types.ChatEvent{}, err
		}

		switch event.Event {
		case "content_block_start":
			var start struct {
				Index        int `json:"index"`
				ContentBlock struct {
					Type string `json:"type"`
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"content_block"`
			}
			if err := json.Unmarshal([]byte(event.Data), &start); err != nil {
				return types.ChatEvent{}, providererrors.NewStreamError("malformed content_block_start", err)
			}
			s.blockKind[start.Index] = start.ContentBlock.Type
			if start.ContentBlock.Type == "tool_use" {
				ev, _, ok := s.acc.Start(start.Index, start.ContentBlock.ID, start.ContentBlock.Name)
				if ok {
					return ev, nil
				}
			}

		case "content_block_delta":
			var delta struct {
				Index int `json:"index"`
				Delta struct {
					Type        string `json:"type"`
					Text        string `json:"text"`
					PartialJSON string `json:"partial_json"`
					Thinking    string `json:"thinking"`
				} `json:"delta"`
			}
			if err := json.Unmarshal([]byte(event.Data), &delta); err != nil {
				return types.ChatEvent{}, providererrors.NewStreamError("malformed content_block_delta", err)
			}
			switch delta.Delta.Type {
			case "text_delta":
				return types.ContentEvent(delta.Delta.Text), nil
			case "input_json_delta":
				if delta.Delta.PartialJSON == "" {
					continue
				}
				return s.acc.Delta(delta.Index, delta.Delta.PartialJSON), nil
			case "thinking_delta":
				return types.ReasoningEvent(delta.Delta.Thinking), nil
			}

		case "message_delta":
			var msgDelta struct {
				Delta struct {
					StopReason string `json:"stop_reason"`
				} `json:"delta"`
				Usage anthropicUsage `json:"usage"`
			}
			if err := json.Unmarshal([]byte(event.Data), &msgDelta); err != nil {
				return types.ChatEvent{}, providererrors.NewStreamError("malformed message_delta", err)
			}
			if msgDelta.Delta.StopReason != "" {
				return types.UsageEvent(types.Usage{
					CompletionTokens: int64(msgDelta.Usage.OutputTokens),
					TotalTokens:      int64(msgDelta.Usage.OutputTokens),
				}), nil
			}

		case "message_stop":
			s.done = true
			return types.DoneEvent(), nil
		}
	}
}
