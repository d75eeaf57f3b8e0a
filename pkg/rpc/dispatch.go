package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net"

	"github.com/emesal/ratatoskr/pkg/gateway"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// dispatchUnary runs a single non-streaming operation and returns its
// reply payload, or an error to be mapped onto the wire by the caller.
func dispatchUnary(ctx context.Context, gw *gateway.Gateway, env Envelope) (any, error) {
	switch env.Op {
	case OpChat:
		var req ChatRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.Chat(ctx, req.Messages, req.Options)

	case OpGenerate:
		var req GenerateRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.Generate(ctx, req.Prompt, req.Options)

	case OpEmbed:
		var req EmbedRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.Embed(ctx, req.ModelID, req.Input)

	case OpEmbedBatch:
		var req EmbedBatchRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.EmbedBatch(ctx, req.ModelID, req.Inputs)

	case OpInferNli:
		var req NliRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.InferNli(ctx, req.ModelID, req.Premise, req.Hypothesis)

	case OpClassifyZeroShot:
		var req ClassifyZeroShotRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.ClassifyZeroShot(ctx, req.ModelID, req.Text, req.Labels)

	case OpClassifyStance:
		var req ClassifyStanceRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.ClassifyStance(ctx, req.ModelID, req.Text, req.Target)

	case OpCountTokens:
		var req CountTokensRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		count, err := gw.CountTokens(ctx, req.ModelID, req.Text)
		if err != nil {
			return nil, err
		}
		return CountTokensReply{Count: count}, nil

	case OpListModels:
		return ListModelsReply{Models: gw.Models()}, nil

	case OpModelStatus:
		var req ModelStatusRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		model, found := gw.ModelStatus(req.ID)
		return ModelStatusReply{Model: model, Found: found}, nil

	case OpResolvePreset:
		var req ResolvePresetRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, err
		}
		return gw.ResolvePreset(req.ModelString)

	case OpGetCapabilities:
		return GetCapabilitiesReply{Capabilities: gw.Capabilities().List()}, nil

	case OpHealth:
		return HealthReply{OK: true, Providers: gw.ProviderNames()}, nil

	default:
		return nil, &WireError{Code: CodeUnimplemented, Message: "unknown operation: " + string(env.Op)}
	}
}

// dispatchStream runs a server-streaming operation, writing one StreamFrame
// per event directly to conn as they arrive rather than buffering the
// whole response, and returns after the stream ends or conn fails.
func dispatchStream(ctx context.Context, gw *gateway.Gateway, env Envelope, conn net.Conn) error {
	var (
		stream interface {
			Next(context.Context) (types.ChatEvent, error)
			Close() error
		}
		err error
	)

	switch env.Op {
	case OpChatStream:
		var req ChatRequest
		if unmarshalErr := json.Unmarshal(env.Payload, &req); unmarshalErr != nil {
			return writeStreamFrame(conn, StreamFrame{Err: MapError(unmarshalErr)})
		}
		stream, err = gw.ChatStream(ctx, req.Messages, req.Options)

	case OpGenerateStream:
		var req GenerateRequest
		if unmarshalErr := json.Unmarshal(env.Payload, &req); unmarshalErr != nil {
			return writeStreamFrame(conn, StreamFrame{Err: MapError(unmarshalErr)})
		}
		stream, err = gw.ChatStream(ctx, []types.Message{types.NewUserMessage(req.Prompt)}, req.Options)

	default:
		return writeStreamFrame(conn, StreamFrame{Err: &WireError{Code: CodeUnimplemented, Message: "unknown streaming operation: " + string(env.Op)}})
	}

	if err != nil {
		return writeStreamFrame(conn, StreamFrame{Err: MapError(err)})
	}
	defer stream.Close()

	for {
		event, err := stream.Next(ctx)
		if err == io.EOF {
			return writeStreamFrame(conn, StreamFrame{End: true})
		}
		if err != nil {
			return writeStreamFrame(conn, StreamFrame{Err: MapError(err)})
		}

		raw, marshalErr := json.Marshal(event)
		if marshalErr != nil {
			return writeStreamFrame(conn, StreamFrame{Err: MapError(marshalErr)})
		}
		if writeErr := writeStreamFrame(conn, StreamFrame{Event: raw}); writeErr != nil {
			return writeErr
		}
	}
}

func writeStreamFrame(conn net.Conn, frame StreamFrame) error {
	raw, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return WriteFrame(conn, raw)
}
