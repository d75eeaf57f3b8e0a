package rpc

import "encoding/json"

// Op names one interface operation on the wire (§6). Every operation the
// embedded gateway exposes has a corresponding Op; ChatStream and
// GenerateStream are the only server-streaming variants, everything else
// is unary.
type Op string

const (
	OpChat             Op = "chat"
	OpChatStream       Op = "chat_stream"
	OpGenerate         Op = "generate"
	OpGenerateStream   Op = "generate_stream"
	OpEmbed            Op = "embed"
	OpEmbedBatch       Op = "embed_batch"
	OpInferNli         Op = "infer_nli"
	OpClassifyZeroShot Op = "classify_zero_shot"
	OpClassifyStance   Op = "classify_stance"
	OpCountTokens      Op = "count_tokens"
	OpListModels       Op = "list_models"
	OpModelStatus      Op = "model_status"
	OpResolvePreset    Op = "resolve_preset"
	OpGetCapabilities  Op = "get_capabilities"
	OpHealth           Op = "health"
)

// streamingOps names the Ops that reply with zero or more StreamFrames
// instead of a single Reply.
var streamingOps = map[Op]bool{
	OpChatStream:     true,
	OpGenerateStream: true,
}

// Envelope is the request frame: an operation name plus its JSON-encoded
// payload.
type Envelope struct {
	Op      Op              `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Reply is the unary response frame.
type Reply struct {
	Payload json.RawMessage `json:"payload,omitempty"`
	Err     *WireError      `json:"error,omitempty"`
}

// StreamFrame is one element of a server-streaming response. Exactly one
// of Event, Err, or End is meaningful per frame: a data frame carries
// Event, a stream that failed mid-flight carries Err, and a cleanly
// finished stream sends one final frame with End set.
type StreamFrame struct {
	Event json.RawMessage `json:"event,omitempty"`
	Err   *WireError      `json:"error,omitempty"`
	End   bool            `json:"end,omitempty"`
}
