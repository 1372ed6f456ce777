// internal/controller/events_controller.go
package controller

import (
    "encoding/json"
    "fmt"
    "net/http"

    "github.com/ziljnk/content-generation/internal/progress"
    "github.com/ziljnk/content-generation/internal/queue"
)

// EventsController relays the progress broadcast channel to browsers as
// server-sent events. Delivery is best effort: a slow client drops events
// rather than blocking the pipelines.
type EventsController struct {
    Bus queue.Queue
}

func (c *EventsController) Stream(w http.ResponseWriter, r *http.Request) {
    flusher, ok := w.(http.Flusher)
    if !ok {
        http.Error(w, "streaming unsupported", http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("Connection", "keep-alive")

    events := make(chan progress.Event, 16)
    cancel, err := c.Bus.Subscribe(progress.Channel, func(payload any) error {
        e, ok := payload.(progress.Event)
        if !ok {
            return nil
        }
        select {
        case events <- e:
        default: // client is behind, drop
        }
        return nil
    })
    if err != nil {
        http.Error(w, "failed to subscribe", http.StatusInternalServerError)
        return
    }
    defer cancel()

    flusher.Flush()

    for {
        select {
        case <-r.Context().Done():
            return
        case e := <-events:
            b, err := json.Marshal(e)
            if err != nil {
                continue
            }
            fmt.Fprintf(w, "data: %s\n\n", b)
            flusher.Flush()
        }
    }
}
