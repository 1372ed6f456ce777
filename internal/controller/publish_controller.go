// internal/controller/publish_controller.go
package controller

import (
    "context"
    "encoding/json"
    "net/http"

    "github.com/ziljnk/content-generation/internal/publisher"
)

type emailSender interface {
    Send(ctx context.Context, recipients []string, subject, htmlBody string) error
}

type socialPublisher interface {
    Post(ctx context.Context, message, imageURL string) (string, error)
}

// PublishController exposes the direct channel endpoints used from the review
// screen, bypassing the queue for one-off sends.
type PublishController struct {
    Email    emailSender
    Facebook socialPublisher
}

// SendEmail delivers arbitrary HTML content to a comma-separated recipient list.
func (c *PublishController) SendEmail(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Recipients string `json:"recipients"`
        Subject    string `json:"subject"`
        Content    string `json:"content"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.Recipients == "" || body.Content == "" {
        http.Error(w, "Recipients and content are required", http.StatusBadRequest)
        return
    }

    recipients := publisher.SplitRecipients(body.Recipients)
    if err := c.Email.Send(r.Context(), recipients, body.Subject, body.Content); err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{"success": true})
}

// PostFacebook publishes a caption (optionally with an image) to the page.
func (c *PublishController) PostFacebook(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Message  string `json:"message"`
        ImageURL string `json:"imageUrl"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.Message == "" {
        http.Error(w, "Message is required", http.StatusBadRequest)
        return
    }

    postID, err := c.Facebook.Post(r.Context(), body.Message, body.ImageURL)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]interface{}{
        "success": true,
        "id":      postID,
    })
}
