package rpc

import (
	"context"
	"encoding/json"
	"net"

	"go.uber.org/zap"

	"github.com/emesal/ratatoskr/pkg/gateway"
)

// DefaultMaxConcurrentRequests bounds in-flight requests when a Server is
// built without an explicit limit (§5).
const DefaultMaxConcurrentRequests = 64

// Server dispatches framed requests onto a gateway.Gateway. Admission is
// enforced with a buffered-channel semaphore (§5): once
// MaxConcurrentRequests requests are in flight, further requests are
// rejected immediately with RESOURCE_EXHAUSTED rather than queued.
type Server struct {
	gw     *gateway.Gateway
	sem    chan struct{}
	logger *zap.Logger
}

// ServerOption configures a Server built by NewServer.
type ServerOption func(*Server)

// WithMaxConcurrentRequests overrides DefaultMaxConcurrentRequests.
func WithMaxConcurrentRequests(n int) ServerOption {
	return func(s *Server) { s.sem = make(chan struct{}, n) }
}

// WithServerLogger attaches a structured logger.
func WithServerLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer builds a Server dispatching onto gw.
func NewServer(gw *gateway.Gateway, opts ...ServerOption) *Server {
	s := &Server{
		gw:     gw,
		sem:    make(chan struct{}, DefaultMaxConcurrentRequests),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve accepts connections from ln until ctx is cancelled or Accept fails.
// Each connection is handled on its own goroutine; within a connection,
// requests are processed one at a time in arrival order.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	for {
		frame, err := ReadFrame(conn)
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			s.logger.Warn("malformed envelope", zap.Error(err))
			s.writeReply(conn, Reply{Err: &WireError{Code: CodeInvalidArgument, Message: "malformed envelope"}})
			continue
		}

		select {
		case s.sem <- struct{}{}:
			s.handleEnvelope(ctx, conn, env)
			<-s.sem
		default:
			s.logger.Warn("rejecting request: over max_concurrent_requests", zap.String("op", string(env.Op)))
			if streamingOps[env.Op] {
				writeStreamFrame(conn, StreamFrame{Err: &WireError{Code: CodeResourceExhausted, Message: "too many concurrent requests"}})
			} else {
				s.writeReply(conn, Reply{Err: &WireError{Code: CodeResourceExhausted, Message: "too many concurrent requests"}})
			}
		}
	}
}

func (s *Server) handleEnvelope(ctx context.Context, conn net.Conn, env Envelope) {
	if streamingOps[env.Op] {
		if err := dispatchStream(ctx, s.gw, env, conn); err != nil {
			s.logger.Warn("stream dispatch failed", zap.String("op", string(env.Op)), zap.Error(err))
		}
		return
	}

	result, err := dispatchUnary(ctx, s.gw, env)
	if err != nil {
		if wireErr, ok := err.(*WireError); ok {
			s.writeReply(conn, Reply{Err: wireErr})
			return
		}
		s.writeReply(conn, Reply{Err: MapError(err)})
		return
	}

	payload, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		s.writeReply(conn, Reply{Err: MapError(marshalErr)})
		return
	}
	s.writeReply(conn, Reply{Payload: payload})
}

func (s *Server) writeReply(conn net.Conn, reply Reply) {
	raw, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error("failed to marshal reply", zap.Error(err))
		return
	}
	if err := WriteFrame(conn, raw); err != nil {
		s.logger.Warn("failed to write reply frame", zap.Error(err))
	}
}
