// Package sse writes Server-Sent Events streams, used for the live pickup
// feed on the admin dashboard.
//
//	stream := sse.New(w, r)
//	for update := range updates {
//	    stream.Send("pickup", update)
//	    if stream.IsClosed() {
//	        break
//	    }
//	}
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stream is one open SSE connection.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New sets the event-stream headers and returns the stream, or nil when
// the ResponseWriter cannot flush.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// Keeps nginx from buffering the stream.
	w.Header().Set("X-Accel-Buffering", "no")

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send emits a named event with a JSON payload.
func (s *Stream) Send(event string, data any) error {
	if s == nil || s.closed {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}

	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload)
	s.flusher.Flush()
	s.checkClient()
	return nil
}

// SendRaw emits a bare data line.
func (s *Stream) SendRaw(data string) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.flusher.Flush()
}

// Comment emits an SSE comment, which doubles as a keepalive.
func (s *Stream) Comment(msg string) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, ": %s\n\n", msg)
	s.flusher.Flush()
}

// IsClosed reports whether the client went away.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	s.checkClient()
	return s.closed
}

func (s *Stream) checkClient() {
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
}
