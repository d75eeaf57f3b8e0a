package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
	"github.com/emesal/ratatoskr/pkg/providerutils/streaming"
)

type ollamaStreamChunk struct {
	Model   string `json:"model"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Delta        struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Index    int    `json:"index"`
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"delta"`
	} `json:"choices"`
}

func (p *Provider) doChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (provider.ChatStream, error) {
	if err := validateChatInputs(messages); err != nil {
		return nil, err
	}

	body := buildRequestBody(opts.Model, messages, opts, true)

	httpResp, err := p.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/v1/chat/completions",
		Body:    body,
		Headers: map[string]string{"Accept": "text/event-stream"},
	})
	if err != nil {
		return nil, httperror.Map("ollama", err)
	}

	return newOllamaStream(httpResp.Body), nil
}

// ollamaStream decodes the OpenAI-compatible SSE stream into ChatEvents,
// delegating tool-call index remapping to streaming.ToolCallAccumulator.
type ollamaStream struct {
	body    io.ReadCloser
	parser  *streaming.SSEParser
	acc     *streaming.ToolCallAccumulator
	pending *types.ChatEvent
	done    bool
	err     error
}

func newOllamaStream(body io.ReadCloser) *ollamaStream {
	return &ollamaStream{
		body:   body,
		parser: streaming.NewSSEParser(body),
		acc:    streaming.NewToolCallAccumulator(),
	}
}

func (s *ollamaStream) Close() error { return s.body.Close() }

func (s *ollamaStream) Next(ctx context.Context) (types.ChatEvent, error) {
	if s.err != nil {
		return types.ChatEvent{}, s.err
	}
	if s.done {
		return types.ChatEvent{}, io.EOF
	}
	if s.pending != nil {
		ev := *s.pending
		s.pending = nil
		return ev, nil
	}

	for {
		event, err := s.parser.Next()
		if err != nil {
			s.err = err
			return types.ChatEvent{}, err
		}
		if streaming.IsStreamDone(event) {
			s.done = true
			return types.DoneEvent(), nil
		}

		var chunk ollamaStreamChunk
		if err := json.Unmarshal([]byte(event.Data), &chunk); err != nil {
			return types.ChatEvent{}, providererrors.NewStreamError("malformed ollama stream chunk", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		choice := chunk.Choices[0]
		if choice.Delta.Content != "" {
			return types.ContentEvent(choice.Delta.Content), nil
		}
		if len(choice.Delta.ToolCalls) > 0 {
			tc := choice.Delta.ToolCalls[0]
			if ev, _, ok := s.acc.Start(tc.Index, tc.ID, tc.Function.Name); ok {
				if tc.Function.Arguments == "" {
					return ev, nil
				}
				delta := s.acc.Delta(tc.Index, tc.Function.Arguments)
				s.pending = &delta
				return ev, nil
			}
			return s.acc.Delta(tc.Index, tc.Function.Arguments), nil
		}
		if choice.FinishReason != "" {
			return types.UsageEvent(types.Usage{}), nil
		}
	}
}
