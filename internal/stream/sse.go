// Package stream provides the transport implementations behind the
// registry's Stream contract: server-sent events and WebSocket. Both queue
// outbound frames through a bounded buffer so one slow client can only fail
// its own writes, never stall a fan-out pass.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// sendBufferSize bounds the outbound queue per stream. A client that falls
// further behind than this starts failing writes and gets disconnected.
const sendBufferSize = 64

var (
	// ErrStreamClosed is returned by Send after the stream ended.
	ErrStreamClosed = errors.New("stream closed")
	// ErrSlowClient is returned by Send when the outbound queue is full.
	ErrSlowClient = errors.New("client too slow, outbound queue full")
)

type frame struct {
	event string
	data  []byte
}

// SSE is a server-sent-events stream. Frames queued via Send are written to
// the client by Run, which must be called from the HTTP handler goroutine
// and blocks for the lifetime of the stream.
type SSE struct {
	send     chan frame
	closing  chan struct{}
	terminal chan struct{}
	once     sync.Once
}

// NewSSE creates an SSE stream ready for Subscribe; it delivers nothing
// until Run is started.
func NewSSE() *SSE {
	return &SSE{
		send:     make(chan frame, sendBufferSize),
		closing:  make(chan struct{}),
		terminal: make(chan struct{}),
	}
}

// Send queues one named event for delivery. It never blocks: a full queue
// fails with ErrSlowClient.
func (s *SSE) Send(event string, data []byte) error {
	select {
	case <-s.terminal:
		return ErrStreamClosed
	default:
	}

	select {
	case s.send <- frame{event: event, data: data}:
		return nil
	case <-s.terminal:
		return ErrStreamClosed
	default:
		return ErrSlowClient
	}
}

// Close asks Run to stop and end the response. Safe to call more than once.
func (s *SSE) Close() error {
	s.once.Do(func() { close(s.closing) })
	return nil
}

// Terminal returns a channel closed once the stream ended for any reason.
func (s *SSE) Terminal() <-chan struct{} {
	return s.terminal
}

// Run writes the SSE preamble and then streams queued frames to w until the
// request context is cancelled or the stream is closed. The terminal channel
// is closed on return.
func (s *SSE) Run(ctx context.Context, w http.ResponseWriter) error {
	defer close(s.terminal)

	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("response writer does not support flushing")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.closing:
			return nil
		case f := <-s.send:
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", f.event, f.data); err != nil {
				return fmt.Errorf("write sse frame: %w", err)
			}
			flusher.Flush()
		}
	}
}
