// internal/model/content.go
package model

import "time"

// Content types.
const (
    TypeBlog   = "blog"
    TypeEmail  = "email"
    TypeSocial = "social"
)

// Content statuses. Records are created as "processing" by background flows
// (so callers get a stable id before generation finishes) or directly as
// "generated" by the synchronous flow. Archival is a status, not a delete.
const (
    StatusProcessing = "processing"
    StatusGenerated  = "generated"
    StatusApproved   = "approved"
    StatusPublished  = "published"
    StatusArchived   = "archived"
)

type Content struct {
    ID        int          `db:"id" json:"id"`
    Type      string       `db:"type" json:"type"`
    Prompt    string       `db:"prompt" json:"prompt"`
    Config    *EmailConfig `db:"config" json:"config,omitempty"`
    Content   string       `db:"content" json:"content"`
    ImageURL  string       `db:"image_url" json:"image_url,omitempty"`
    Status    string       `db:"status" json:"status"`
    CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// EmailConfig is the only type-specific generation config.
// Blog and social carry none.
type EmailConfig struct {
    Tone     string `json:"tone"`
    Purpose  string `json:"purpose"`
    Audience string `json:"audience"`
}

// WithDefaults fills missing fields with the standard defaults.
func (c *EmailConfig) WithDefaults() EmailConfig {
    out := EmailConfig{Tone: "professional", Purpose: "general", Audience: "general"}
    if c == nil {
        return out
    }
    if c.Tone != "" {
        out.Tone = c.Tone
    }
    if c.Purpose != "" {
        out.Purpose = c.Purpose
    }
    if c.Audience != "" {
        out.Audience = c.Audience
    }
    return out
}

// ValidType reports whether t is a known content type.
func ValidType(t string) bool {
    return t == TypeBlog || t == TypeEmail || t == TypeSocial
}

// ValidStatus reports whether s is a known content status.
func ValidStatus(s string) bool {
    switch s {
    case StatusProcessing, StatusGenerated, StatusApproved, StatusPublished, StatusArchived:
        return true
    }
    return false
}
