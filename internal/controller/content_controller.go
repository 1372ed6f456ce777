// internal/controller/content_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/ziljnk/content-generation/internal/publisher"
    "github.com/ziljnk/content-generation/internal/service"
)

type ContentController struct {
    ContentService *service.ContentService
}

// List returns records filtered by the status and type query params,
// newest first.
func (c *ContentController) List(w http.ResponseWriter, r *http.Request) {
    status := r.URL.Query().Get("status")
    contentType := r.URL.Query().Get("type")

    contents, err := c.ContentService.List(status, contentType)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success": true,
        "data":    contents,
    })
}

// UpdateStatus moves a record through the review lifecycle.
func (c *ContentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
    var body struct {
        ID     int    `json:"id"`
        Status string `json:"status"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.ID == 0 || body.Status == "" {
        http.Error(w, "Missing id or status", http.StatusBadRequest)
        return
    }

    updated, err := c.ContentService.UpdateStatus(body.ID, body.Status)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success": true,
        "data":    updated,
    })
}

// Publish queues channel deliveries for an approved record.
func (c *ContentController) Publish(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid content id", http.StatusBadRequest)
        return
    }

    var body struct {
        Channels   []string `json:"channels"`
        Recipients string   `json:"recipients"`
        Subject    string   `json:"subject"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    recipients := publisher.SplitRecipients(body.Recipients)
    if err := c.ContentService.Publish(id, body.Channels, recipients, body.Subject); err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success":  true,
        "id":       id,
        "channels": body.Channels,
        "status":   "queued",
    })
}

// Regenerate rewrites a record from user feedback.
func (c *ContentController) Regenerate(w http.ResponseWriter, r *http.Request) {
    var body struct {
        ID       int    `json:"id"`
        Feedback string `json:"feedback"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.ID == 0 || body.Feedback == "" {
        http.Error(w, "ID and feedback are required", http.StatusBadRequest)
        return
    }

    updated, err := c.ContentService.Regenerate(r.Context(), body.ID, body.Feedback)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success": true,
        "data":    updated,
    })
}

// Media lists every record that carries a generated image.
func (c *ContentController) Media(w http.ResponseWriter, r *http.Request) {
    items, err := c.ContentService.ListMedia()
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success": true,
        "data":    items,
    })
}
