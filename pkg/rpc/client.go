package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"sync"

	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// Client is a remote provider.Provider that speaks the framed protocol to
// a ratd daemon. The same inputs produce the same responses as the embedded
// gateway, carried over a connection instead of an in-process call. Errors
// are rebuilt from the wire by UnmapError, which keeps the core error type
// only for the codes it lists; the rest arrive as APIError. A Client serializes requests over a single connection;
// callers wanting concurrent requests open multiple Clients, the same way
// they'd configure multiple HTTP connections per adapter.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

var _ provider.Provider = (*Client)(nil)

// Dial connects to a ratd daemon listening at address.
func Dial(address string) (*Client, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// Name identifies this as the remote client, for logging and router wiring
// when a build-time deployment prefers ratd over embedding a gateway.
func (c *Client) Name() string { return "remote" }

func (c *Client) call(op Op, req any, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callLocked(op, req, out)
}

func (c *Client) callLocked(op Op, req any, out any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(Envelope{Op: op, Payload: payload})
	if err != nil {
		return err
	}
	if err := WriteFrame(c.conn, envelope); err != nil {
		return err
	}

	frame, err := ReadFrame(c.conn)
	if err != nil {
		return err
	}
	var reply Reply
	if err := json.Unmarshal(frame, &reply); err != nil {
		return err
	}
	if reply.Err != nil {
		return UnmapError(reply.Err)
	}
	if out == nil || len(reply.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(reply.Payload, out)
}

func (c *Client) Chat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	var resp types.ChatResponse
	if err := c.call(OpChat, ChatRequest{Messages: messages, Options: opts}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (*types.GenerateResponse, error) {
	var resp types.GenerateResponse
	if err := c.call(OpGenerate, GenerateRequest{Prompt: prompt, Options: opts}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	var resp types.EmbeddingResult
	if err := c.call(OpEmbed, EmbedRequest{ModelID: modelID, Input: input}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	var resp types.EmbeddingsResult
	if err := c.call(OpEmbedBatch, EmbedBatchRequest{ModelID: modelID, Inputs: inputs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) InferNli(ctx context.Context, modelID, premise, hypothesis string) (*types.NliResult, error) {
	var resp types.NliResult
	if err := c.call(OpInferNli, NliRequest{ModelID: modelID, Premise: premise, Hypothesis: hypothesis}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClassifyZeroShot(ctx context.Context, modelID, text string, labels []string) (*types.ClassifyResult, error) {
	var resp types.ClassifyResult
	if err := c.call(OpClassifyZeroShot, ClassifyZeroShotRequest{ModelID: modelID, Text: text, Labels: labels}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClassifyStance(ctx context.Context, modelID, text, target string) (*types.ClassifyResult, error) {
	var resp types.ClassifyResult
	if err := c.call(OpClassifyStance, ClassifyStanceRequest{ModelID: modelID, Text: text, Target: target}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CountTokens(ctx context.Context, modelID, text string) (int64, error) {
	var resp CountTokensReply
	if err := c.call(OpCountTokens, CountTokensRequest{ModelID: modelID, Text: text}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Capabilities reports what the remote daemon's gateway supports. Provider
// does not allow Capabilities to return an error; a failed round trip
// reports the empty set rather than panicking.
func (c *Client) Capabilities() types.Capabilities {
	var resp GetCapabilitiesReply
	if err := c.call(OpGetCapabilities, struct{}{}, &resp); err != nil {
		return types.EmptyCapabilities()
	}
	return types.NewCapabilities(resp.Capabilities...)
}

// ListModels returns every model the remote registry knows about.
func (c *Client) ListModels() ([]types.ModelMetadata, error) {
	var resp ListModelsReply
	if err := c.call(OpListModels, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// ModelStatus reports whether id names a model the remote registry knows.
func (c *Client) ModelStatus(id string) (types.ModelMetadata, bool, error) {
	var resp ModelStatusReply
	if err := c.call(OpModelStatus, ModelStatusRequest{ID: id}, &resp); err != nil {
		return types.ModelMetadata{}, false, err
	}
	return resp.Model, resp.Found, nil
}

// ResolvePreset resolves modelString through the remote gateway's registry.
func (c *Client) ResolvePreset(modelString string) (types.ResolvedModel, error) {
	var resp types.ResolvedModel
	if err := c.call(OpResolvePreset, ResolvePresetRequest{ModelString: modelString}, &resp); err != nil {
		return types.ResolvedModel{}, err
	}
	return resp, nil
}

// Health reports daemon liveness (§12: rat health).
func (c *Client) Health() (HealthReply, error) {
	var resp HealthReply
	if err := c.call(OpHealth, struct{}{}, &resp); err != nil {
		return HealthReply{}, err
	}
	return resp, nil
}

// ChatStream opens a server-streaming chat call. The underlying connection
// is held for the exclusive use of the returned stream until it reaches
// end-of-stream or Close is called; concurrent calls on the same Client
// block until it completes.
func (c *Client) ChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (provider.ChatStream, error) {
	return c.openStream(OpChatStream, ChatRequest{Messages: messages, Options: opts})
}

// GenerateStream opens a server-streaming generate call, the Generate
// counterpart to ChatStream (§6).
func (c *Client) GenerateStream(ctx context.Context, prompt string, opts types.GenerateOptions) (provider.ChatStream, error) {
	return c.openStream(OpGenerateStream, GenerateRequest{Prompt: prompt, Options: opts})
}

func (c *Client) openStream(op Op, req any) (provider.ChatStream, error) {
	c.mu.Lock()
	payload, err := json.Marshal(req)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	envelope, err := json.Marshal(Envelope{Op: op, Payload: payload})
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if err := WriteFrame(c.conn, envelope); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	return &remoteChatStream{client: c}, nil
}

// remoteChatStream implements provider.ChatStream over frames read directly
// off the Client's connection, mirroring the lazy pull-based shape of the
// HTTP adapters' SSE streams (e.g. pkg/providers/anthropic's stream) but
// reading length-prefixed StreamFrames instead of SSE events.
type remoteChatStream struct {
	client *Client
	done   bool
}

func (s *remoteChatStream) Next(ctx context.Context) (types.ChatEvent, error) {
	if s.done {
		return types.ChatEvent{}, io.EOF
	}

	frame, err := ReadFrame(s.client.conn)
	if err != nil {
		s.finish()
		return types.ChatEvent{}, err
	}

	var sf StreamFrame
	if err := json.Unmarshal(frame, &sf); err != nil {
		s.finish()
		return types.ChatEvent{}, err
	}
	if sf.Err != nil {
		s.finish()
		return types.ChatEvent{}, UnmapError(sf.Err)
	}
	if sf.End {
		s.finish()
		return types.ChatEvent{}, io.EOF
	}

	var event types.ChatEvent
	if err := json.Unmarshal(sf.Event, &event); err != nil {
		s.finish()
		return types.ChatEvent{}, err
	}
	return event, nil
}

func (s *remoteChatStream) finish() {
	if !s.done {
		s.done = true
		s.client.mu.Unlock()
	}
}

func (s *remoteChatStream) Close() error {
	s.finish()
	return nil
}
