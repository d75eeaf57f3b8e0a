// Package rpc implements the framed request/response protocol a remote
// ratd daemon and rat client speak (spec §4.7, §6): a length-prefixed
// binary frame carrying a JSON envelope, generalizing the provider
// adapters' SSE-over-HTTP idiom (pkg/providerutils/streaming) to a plain
// TCP transport with no HTTP framing available to lean on.
package rpc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameBytes bounds a single frame so a corrupt or hostile length
// prefix can't make a reader allocate unbounded memory.
const MaxFrameBytes = 16 << 20 // 16 MiB

// WriteFrame writes payload as a 4-byte big-endian length prefix followed
// by the payload bytes.
func WriteFrame(w io.Writer, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one length-prefixed frame from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > MaxFrameBytes {
		return nil, fmt.Errorf("rpc: frame of %d bytes exceeds max %d", n, MaxFrameBytes)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
