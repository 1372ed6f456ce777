// Package progress delivers generation milestone events to whichever transport
// is bound to a run: a newline-delimited JSON response stream for synchronous
// requests, or a broadcast channel for webhook-triggered background jobs.
package progress

import "time"

// Channel is the fixed broadcast channel every generation run publishes onto.
// Events from concurrent runs interleave; consumers disambiguate by Step.
const Channel = "content-generation"

// Event statuses.
const (
	StatusPending    = "pending"
	StatusGenerating = "generating"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Event is one milestone of a generation run. Ephemeral, never persisted.
type Event struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// NewEvent stamps an event with the current time in unix milliseconds.
func NewEvent(step, message, status string) Event {
	return Event{Step: step, Message: message, Status: status, Timestamp: time.Now().UnixMilli()}
}

// Sink receives milestone events from a generation run.
type Sink interface {
	Send(e Event)
}

// Func adapts a plain function to the Sink interface.
type Func func(e Event)

func (f Func) Send(e Event) { f(e) }
