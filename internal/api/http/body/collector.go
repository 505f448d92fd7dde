// Package body accumulates request payloads under a size ceiling.
package body

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultLimit is the largest payload accepted, in bytes.
	DefaultLimit int64 = 1_000_000
	// DefaultChunkSize is the size of a single read from the transport.
	DefaultChunkSize = 32 * 1024
)

// LocalKey is the fiber locals key holding the collected payload.
const LocalKey = "request_body"

// ErrPayloadTooLarge is returned once the accumulated payload exceeds the limit.
var ErrPayloadTooLarge = errors.New("payload too large")

// Collector reads a whole request body. The zero value uses the defaults.
type Collector struct {
	Limit     int64
	ChunkSize int
}

// Collect reads src to EOF and returns the bytes in arrival order. When the
// total exceeds the limit, abort is called once, reading stops and
// ErrPayloadTooLarge is returned. abort may be nil.
func (c Collector) Collect(ctx context.Context, src io.Reader, abort func()) ([]byte, error) {
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	chunkSize := c.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if src == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if int64(buf.Len()) > limit {
				if abort != nil {
					abort()
				}
				return nil, ErrPayloadTooLarge
			}
		}
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}
}
