package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) (func(), error)
}

// PublishJob asks a consumer to push one content record out to a channel.
// Recipients and Subject only matter for the email channel.
type PublishJob struct {
	ContentID  int      `json:"content_id"`
	Channel    string   `json:"channel"` // "email" or "facebook"
	Recipients []string `json:"recipients,omitempty"`
	Subject    string   `json:"subject,omitempty"`
}

// InMemoryQueue is an in-process pub/sub bus with retry. It backs the publish
// workflow when no broker is configured, and fans progress events out to
// connected event-stream subscribers.
type InMemoryQueue struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string]map[int]func(payload any) error),
	}
}

// jobEnvelope wraps a payload with retry info
type jobEnvelope struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers of the topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := make([]func(payload any) error, 0, len(q.handlers[topic]))
	for _, h := range q.handlers[topic] {
		handlers = append(handlers, h)
	}
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := jobEnvelope{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(topic, handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(topic string, handler func(payload any) error, job jobEnvelope) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job on %s failed (attempt %d/%d): %v\n", topic, job.RetryCount, job.MaxRetries, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job on %s permanently failed after %d attempts\n", topic, job.MaxRetries)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic. The returned function removes it again,
// which event-stream connections use when a client goes away.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) (func(), error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.handlers[topic] == nil {
		q.handlers[topic] = make(map[int]func(payload any) error)
	}
	q.nextID++
	id := q.nextID
	q.handlers[topic][id] = handler

	cancel := func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.handlers[topic], id)
	}
	return cancel, nil
}

var _ Queue = (*InMemoryQueue)(nil)
