package rpc

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/emesal/ratatoskr/pkg/gateway"
	"github.com/emesal/ratatoskr/pkg/provider"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	provider.Unimplemented
	name    string
	gate    chan struct{} // if non-nil, Chat blocks until this is closed
	failGet error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Capabilities() types.Capabilities {
	return types.ChatOnlyCapabilities()
}

func (s *stubProvider) Chat(ctx context.Context, messages []types.Message, opts types.ChatOptions) (*types.ChatResponse, error) {
	if s.gate != nil {
		<-s.gate
	}
	if s.failGet != nil {
		return nil, s.failGet
	}
	return &types.ChatResponse{Content: "hello from " + s.name, Model: opts.Model}, nil
}

func (s *stubProvider) ChatStream(ctx context.Context, messages []types.Message, opts types.ChatOptions) (provider.ChatStream, error) {
	return &stubStream{events: []types.ChatEvent{
		types.ContentEvent("hi"),
		types.ContentEvent(" there"),
		types.DoneEvent(),
	}}, nil
}

type stubStream struct {
	events []types.ChatEvent
	i      int
}

func (s *stubStream) Next(ctx context.Context) (types.ChatEvent, error) {
	if s.i >= len(s.events) {
		return types.ChatEvent{}, io.EOF
	}
	ev := s.events[s.i]
	s.i++
	return ev, nil
}

func (s *stubStream) Close() error { return nil }

func startTestServer(t *testing.T, srv *Server) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Serve(ctx, ln)

	return ln.Addr().String(), func() { cancel(); ln.Close() }
}

func buildGatewayWithProvider(t *testing.T, p provider.Provider) *gateway.Gateway {
	t.Helper()
	gw, err := gateway.NewBuilder().WithProvider("stub", p).Build()
	require.NoError(t, err)
	return gw
}

func TestClientChatRoundTrip(t *testing.T) {
	gw := buildGatewayWithProvider(t, &stubProvider{name: "stub"})
	addr, stop := startTestServer(t, NewServer(gw))
	defer stop()

	client, err := Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Chat(context.Background(), []types.Message{types.NewUserMessage("hi")}, types.ChatOptions{Model: "stub:model-a"})
	require.NoError(t, err)
	assert.Equal(t, "hello from stub", resp.Content)
	assert.Equal(t, "model-a", resp.Model)
}

func TestClientChatModelNotFoundRoundTrips(t *testing.T) {
	gw := buildGatewayWithProvider(t, &stubProvider{name: "stub"})
	addr, stop := startTestServer(t, NewServer(gw))
	defer stop()

	client, err := Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Chat(context.Background(), nil, types.ChatOptions{Model: "ghost:model"})
	require.Error(t, err)
	assert.True(t, providererrors.IsModelNotFoundError(err))
}

func TestClientChatStreamRoundTrip(t *testing.T) {
	gw := buildGatewayWithProvider(t, &stubProvider{name: "stub"})
	addr, stop := startTestServer(t, NewServer(gw))
	defer stop()

	client, err := Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	stream, err := client.ChatStream(context.Background(), []types.Message{types.NewUserMessage("hi")}, types.ChatOptions{Model: "stub:model-a"})
	require.NoError(t, err)
	defer stream.Close()

	var texts []string
	for {
		ev, err := stream.Next(context.Background())
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if ev.Type == types.ChatEventContent {
			texts = append(texts, ev.Text)
		}
	}
	assert.Equal(t, []string{"hi", " there"}, texts)
}

func TestServerRejectsOverMaxConcurrentRequests(t *testing.T) {
	gate := make(chan struct{})
	gw := buildGatewayWithProvider(t, &stubProvider{name: "stub", gate: gate})
	addr, stop := startTestServer(t, NewServer(gw, WithMaxConcurrentRequests(1)))
	defer stop()

	busyClient, err := Dial(addr)
	require.NoError(t, err)
	defer busyClient.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = busyClient.Chat(context.Background(), nil, types.ChatOptions{Model: "stub:model-a"})
	}()

	time.Sleep(50 * time.Millisecond) // let the first request occupy the one admission slot

	rejectedClient, err := Dial(addr)
	require.NoError(t, err)
	defer rejectedClient.Close()

	_, err = rejectedClient.Chat(context.Background(), nil, types.ChatOptions{Model: "stub:model-a"})
	require.Error(t, err)

	close(gate)
	<-done
}

func TestFrameRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go WriteFrame(client, []byte("hello"))

	got, err := ReadFrame(server)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestMapErrorRoundTripsModelNotFound(t *testing.T) {
	err := providererrors.NewModelNotFoundError("m1")
	wire := MapError(err)
	assert.Equal(t, CodeNotFound, wire.Code)

	restored := UnmapError(wire)
	require.True(t, providererrors.IsModelNotFoundError(restored))
}

func TestMapErrorRateLimitedCarriesRetryAfter(t *testing.T) {
	retry := 30
	err := providererrors.NewRateLimitedError("anthropic", "slow down", &retry, nil)
	wire := MapError(err)
	assert.Equal(t, CodeResourceExhausted, wire.Code)
	require.NotNil(t, wire.RetryAfterSeconds)
	assert.Equal(t, 30, *wire.RetryAfterSeconds)
}
