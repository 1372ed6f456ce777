// internal/controller/webhook_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/ziljnk/content-generation/internal/service"
)

type WebhookController struct {
    WebhookService *service.WebhookService
}

// Generate accepts a loosely shaped product event, queues blog/email/social
// generation against the configured brand profile and answers immediately
// with the placeholder ids. Progress flows through the broadcast channel.
func (c *WebhookController) Generate(w http.ResponseWriter, r *http.Request) {
    var payload map[string]any
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    result, err := c.WebhookService.Trigger(r.Context(), payload)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success": true,
        "message": "Content generation queued.",
        "data":    result,
    })
}
