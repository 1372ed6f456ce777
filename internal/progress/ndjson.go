package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
)

// StreamWriter is the synchronous Sink binding: events are serialized one JSON
// object per line onto the response. Valid line types are "progress",
// "complete" and "error". The parallel pipeline branches report concurrently,
// so writes are serialized with a mutex.
type StreamWriter struct {
	mu    sync.Mutex
	w     http.ResponseWriter
	flush func()
}

func NewStreamWriter(w http.ResponseWriter) *StreamWriter {
	sw := &StreamWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flush = f.Flush
	}
	return sw
}

// Send maps a milestone event onto the wire format. Error-status events become
// terminal "error" lines; everything else is a "progress" line.
func (s *StreamWriter) Send(e Event) {
	if e.Status == StatusError {
		s.Error(e.Message)
		return
	}
	s.writeLine(map[string]any{"type": "progress", "message": e.Message})
}

// Complete writes the terminal line carrying the finished record.
func (s *StreamWriter) Complete(data any) {
	s.writeLine(map[string]any{"type": "complete", "data": data})
}

// Error writes a terminal error line.
func (s *StreamWriter) Error(message string) {
	s.writeLine(map[string]any{"type": "error", "error": message})
}

func (s *StreamWriter) writeLine(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		log.Println("failed to encode stream line:", err)
		return
	}
	if _, err := s.w.Write(append(b, '\n')); err != nil {
		// Client went away; the run keeps going regardless.
		return
	}
	if s.flush != nil {
		s.flush()
	}
}

var _ Sink = (*StreamWriter)(nil)
