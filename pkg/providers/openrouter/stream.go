package openrouter

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

type openrouterStreamChunk struct {
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
		Path:    "/chat/completions",
		Body:    body,
		Headers: map[string]string{"Accept": "text/event-stream"},
	})
	if err != nil {
		return nil, httperror.Map("openrouter", err)
	}

	return newOpenRouterStream(httpResp.Body), nil
}

type openrouterStream struct {
	body    io.ReadCloser
	parser  *streaming.SSEParser
	acc     *streaming.ToolCallAccumulator
	pending *types.ChatEvent
	done    bool
	err     error
}

func newOpenRouterStream(body io.ReadCloser) *openrouterStream {
	return &openrouterStream{
		body:   body,
		parser: streaming.NewSSEParser(body),
		acc:    streaming.NewToolCallAccumulator(),
	}
}

func (s *openrouterStream) Close() error { return s.body.Close() }

func (s *openrouterStream) Next(ctx context.Context) (types.ChatEvent, error) {
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

		// OpenRouter inserts SSE comment lines (": OPENROUTER PROCESSING")
		// as keep-alives; SSEParser drops those itself, and any event that
		// still arrives with an empty Data is skipped here.
		if event.Data == "" {
			continue
		}

		var chunk openrouterStreamChunk
		if err := json.Unmarshal([]byte(event.Data), &chunk); err != nil {
			return types.ChatEvent{}, providererrors.NewStreamError("malformed openrouter stream chunk", err)
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
