package queue_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziljnk/content-generation/internal/queue"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var wg sync.WaitGroup
	wg.Add(2)
	var got1, got2 any
	q.Subscribe("events", func(payload any) error {
		got1 = payload
		wg.Done()
		return nil
	})
	q.Subscribe("events", func(payload any) error {
		got2 = payload
		wg.Done()
		return nil
	})

	if err := q.Publish("events", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wg.Wait()
	if got1 != "hello" || got2 != "hello" {
		t.Errorf("payloads = %v, %v", got1, got2)
	}
}

func TestPublishWithoutSubscribersErrors(t *testing.T) {
	q := queue.NewInMemoryQueue()

	if err := q.Publish("nowhere", "x"); err == nil {
		t.Fatal("expected an error with no subscribers")
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()

	cancel, err := q.Subscribe("events", func(payload any) error { return nil })
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	if err := q.Publish("events", "x"); err == nil {
		t.Fatal("cancelled subscriber still counted")
	}
}

func TestFailedJobsAreRetried(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var attempts int64
	done := make(chan struct{})
	q.Subscribe("jobs", func(payload any) error {
		if atomic.AddInt64(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	})

	if err := q.Publish("jobs", "job"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job never succeeded despite retries")
	}
	if got := atomic.LoadInt64(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestDecodePublishJobHandlesBothPayloadShapes(t *testing.T) {
	want := queue.PublishJob{ContentID: 9, Channel: "email", Recipients: []string{"a@example.com"}, Subject: "Hi"}

	got, err := queue.DecodePublishJob(want)
	if err != nil || got.ContentID != 9 {
		t.Errorf("value payload: %+v, %v", got, err)
	}

	got, err = queue.DecodePublishJob([]byte(`{"content_id":9,"channel":"email","recipients":["a@example.com"],"subject":"Hi"}`))
	if err != nil {
		t.Fatalf("JSON payload: %v", err)
	}
	if got.ContentID != 9 || got.Channel != "email" || got.Subject != "Hi" {
		t.Errorf("JSON payload decoded wrong: %+v", got)
	}

	if _, err := queue.DecodePublishJob(42); err == nil {
		t.Error("expected an error for an unsupported payload type")
	}
}
