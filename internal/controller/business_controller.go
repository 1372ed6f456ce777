// internal/controller/business_controller.go
package controller

import (
    "context"
    "encoding/json"
    "net/http"

    "github.com/ziljnk/content-generation/internal/model"
    "github.com/ziljnk/content-generation/internal/repository"
)

type brandAnalyzer interface {
    Analyze(ctx context.Context, pageURL string) (*model.BusinessProfile, error)
}

type BusinessController struct {
    Profiles repository.BusinessProfileRepositoryInterface
    Analyzer brandAnalyzer
}

// Get returns the configured profile, or JSON null when none exists yet.
func (c *BusinessController) Get(w http.ResponseWriter, r *http.Request) {
    profile, err := c.Profiles.Latest()
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, profile)
}

// Save upserts the single profile.
func (c *BusinessController) Save(w http.ResponseWriter, r *http.Request) {
    var profile model.BusinessProfile
    if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if profile.Name == "" {
        http.Error(w, "name is required", http.StatusBadRequest)
        return
    }

    if err := c.Profiles.Upsert(&profile); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, profile)
}

// Analyze scrapes a website and returns a draft profile for the settings
// screen. Nothing is persisted until the user saves it.
func (c *BusinessController) Analyze(w http.ResponseWriter, r *http.Request) {
    var body struct {
        URL string `json:"url"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    profile, err := c.Analyzer.Analyze(r.Context(), body.URL)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, profile)
}
