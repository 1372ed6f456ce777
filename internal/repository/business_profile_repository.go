package repository

import (
	"database/sql"
	"time"

	"github.com/ziljnk/content-generation/internal/model"
)

// BusinessProfileRepositoryInterface defines methods used by services
type BusinessProfileRepositoryInterface interface {
	Latest() (*model.BusinessProfile, error)
	Upsert(p *model.BusinessProfile) error
}

// BusinessProfileRepository is the concrete implementation
type BusinessProfileRepository struct {
	DB *sql.DB
}

// Latest fetches the most recently updated profile, or nil when none exists.
func (r *BusinessProfileRepository) Latest() (*model.BusinessProfile, error) {
	query := `
        SELECT id, url, name, description, logo_url, primary_color, typography, border_radius, padding, created_at, updated_at
        FROM business_profiles
        ORDER BY updated_at DESC
        LIMIT 1
    `
	row := r.DB.QueryRow(query)

	var p model.BusinessProfile
	var description, logoURL sql.NullString
	err := row.Scan(
		&p.ID, &p.URL, &p.Name, &description, &logoURL,
		&p.Styles.PrimaryColor, &p.Styles.Typography, &p.Styles.BorderRadius, &p.Styles.Padding,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not configured yet
		}
		return nil, err
	}
	p.Description = description.String
	p.LogoURL = logoURL.String
	return &p, nil
}

// Upsert keeps a single profile: the existing row is updated when present,
// otherwise a new one is inserted.
func (r *BusinessProfileRepository) Upsert(p *model.BusinessProfile) error {
	now := time.Now()
	p.UpdatedAt = now

	var existingID int
	err := r.DB.QueryRow(`SELECT id FROM business_profiles ORDER BY updated_at DESC LIMIT 1`).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	if err == sql.ErrNoRows {
		p.CreatedAt = now
		query := `
            INSERT INTO business_profiles (url, name, description, logo_url, primary_color, typography, border_radius, padding, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
            RETURNING id
        `
		return r.DB.QueryRow(
			query,
			p.URL, p.Name, p.Description, p.LogoURL,
			p.Styles.PrimaryColor, p.Styles.Typography, p.Styles.BorderRadius, p.Styles.Padding,
			p.CreatedAt, p.UpdatedAt,
		).Scan(&p.ID)
	}

	p.ID = existingID
	query := `
        UPDATE business_profiles
        SET url=$1, name=$2, description=$3, logo_url=$4, primary_color=$5, typography=$6, border_radius=$7, padding=$8, updated_at=$9
        WHERE id=$10
    `
	_, err = r.DB.Exec(
		query,
		p.URL, p.Name, p.Description, p.LogoURL,
		p.Styles.PrimaryColor, p.Styles.Typography, p.Styles.BorderRadius, p.Styles.Padding,
		p.UpdatedAt, p.ID,
	)
	return err
}

var _ BusinessProfileRepositoryInterface = (*BusinessProfileRepository)(nil)
