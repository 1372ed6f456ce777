// internal/model/business_profile.go
package model

import "time"

// BrandStyles is the visual identity applied to generated blog/email markup.
type BrandStyles struct {
    PrimaryColor string `json:"primaryColor"`
    Typography   string `json:"typography"`
    BorderRadius string `json:"borderRadius"`
    Padding      string `json:"padding"`
}

// BusinessProfile is the user-supplied brand identity used to steer prompts.
// The app keeps a single profile; the most recently updated one wins.
type BusinessProfile struct {
    ID          int         `db:"id" json:"id,omitempty"`
    URL         string      `db:"url" json:"url,omitempty"`
    Name        string      `db:"name" json:"name"`
    Description string      `db:"description" json:"description,omitempty"`
    LogoURL     string      `db:"logo_url" json:"logoUrl,omitempty"`
    Styles      BrandStyles `json:"styles"`
    CreatedAt   time.Time   `db:"created_at" json:"created_at,omitempty"`
    UpdatedAt   time.Time   `db:"updated_at" json:"updated_at,omitempty"`
}
