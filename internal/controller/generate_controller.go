// internal/controller/generate_controller.go
package controller

import (
    "context"
    "encoding/json"
    "net/http"
    "strings"

    appErrors "github.com/ziljnk/content-generation/internal/errors"
    "github.com/ziljnk/content-generation/internal/generation"
    "github.com/ziljnk/content-generation/internal/model"
    "github.com/ziljnk/content-generation/internal/progress"
)

type contentGenerator interface {
    Generate(ctx context.Context, opts generation.Options) (*model.Content, error)
}

type GenerateController struct {
    Generator contentGenerator
}

// Generate runs the pipeline synchronously and streams progress as
// newline-delimited JSON. The stream carries "progress" lines, then exactly
// one terminal "complete" or "error" line; stream end means the run is over.
func (c *GenerateController) Generate(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Type            string                 `json:"type"`
        Prompt          string                 `json:"prompt"`
        Config          *model.EmailConfig     `json:"config"`
        BusinessProfile *model.BusinessProfile `json:"businessProfile"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    // Rejected before any byte of the stream goes out, so these still get a
    // real status code.
    if strings.TrimSpace(body.Prompt) == "" {
        http.Error(w, "Prompt is required", http.StatusBadRequest)
        return
    }
    if !model.ValidType(body.Type) {
        http.Error(w, "unknown content type: "+body.Type, http.StatusBadRequest)
        return
    }

    w.Header().Set("Content-Type", "application/x-ndjson")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("Connection", "keep-alive")

    stream := progress.NewStreamWriter(w)

    rec, err := c.Generator.Generate(r.Context(), generation.Options{
        Type:    body.Type,
        Topic:   body.Prompt,
        Config:  body.Config,
        Profile: body.BusinessProfile,
        Sink:    stream,
    })
    if err != nil {
        // Fatal pipeline errors were already written as a terminal error
        // line through the sink; validation errors were not.
        if appErrors.IsInvalidRequest(err) {
            stream.Error(err.Error())
        }
        return
    }

    stream.Complete(rec)
}
