package queue

import (
	"encoding/json"
	"fmt"
	"log"
)

// PublishTopic carries approved-content publish jobs.
const PublishTopic = "content_publishes"

// DecodePublishJob accepts both in-process payloads (a PublishJob value) and
// broker payloads (a JSON body).
func DecodePublishJob(payload any) (PublishJob, error) {
	switch p := payload.(type) {
	case PublishJob:
		return p, nil
	case *PublishJob:
		return *p, nil
	case []byte:
		var job PublishJob
		if err := json.Unmarshal(p, &job); err != nil {
			return PublishJob{}, err
		}
		return job, nil
	}
	return PublishJob{}, fmt.Errorf("unexpected publish job payload type %T", payload)
}

// StartPublishSubscriber wires a delivery function to the publish topic.
// Malformed payloads are dropped; delivery errors bubble up so the queue retries.
func StartPublishSubscriber(q Queue, deliver func(job PublishJob) error) {
	go func() {
		_, err := q.Subscribe(PublishTopic, func(payload any) error {
			job, err := DecodePublishJob(payload)
			if err != nil {
				log.Println("⚠️ Invalid publish job payload:", err)
				return nil // no retry
			}

			log.Println("📩 Processing publish job for content ID:", job.ContentID)
			return deliver(job)
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for", PublishTopic, ":", err)
		}
	}()
}
