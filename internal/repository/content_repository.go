package repository

import (
    "database/sql"
    "encoding/json"
    "time"

    sq "github.com/Masterminds/squirrel"

    appErrors "github.com/ziljnk/content-generation/internal/errors"
    "github.com/ziljnk/content-generation/internal/model"
)

type ContentRepositoryInterface interface {
    Create(c *model.Content) error
    GetByID(id int) (*model.Content, error)
    List(status, contentType string) ([]*model.Content, error)
    ListMedia() ([]*model.Content, error)
    UpdateStatus(id int, status string) error
    UpdateGenerated(c *model.Content) error
}

type ContentRepository struct {
    DB *sql.DB
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const contentColumns = "id, type, prompt, config, content, image_url, status, created_at"

// ====================== Content CRUD ======================

func (r *ContentRepository) Create(c *model.Content) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusProcessing
    }

    cfg, err := marshalConfig(c.Config)
    if err != nil {
        return err
    }

    query := `
        INSERT INTO contents (type, prompt, config, content, image_url, status, created_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.Type, c.Prompt, cfg, c.Content, c.ImageURL, c.Status, c.CreatedAt).Scan(&c.ID)
}

func (r *ContentRepository) GetByID(id int) (*model.Content, error) {
    query := `SELECT ` + contentColumns + ` FROM contents WHERE id=$1`
    c, err := scanContent(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewContentNotFound(id)
        }
        return nil, err
    }
    return c, nil
}

// List returns records newest first, optionally filtered by status and type.
// Filtering by status "generated" also matches rows with a NULL status:
// records written before the status column existed count as generated.
func (r *ContentRepository) List(status, contentType string) ([]*model.Content, error) {
    q := psql.Select(contentColumns).From("contents").OrderBy("created_at DESC")

    if status != "" {
        if status == model.StatusGenerated {
            q = q.Where(sq.Or{
                sq.Eq{"status": model.StatusGenerated},
                sq.Eq{"status": nil},
            })
        } else {
            q = q.Where(sq.Eq{"status": status})
        }
    }
    if contentType != "" {
        q = q.Where(sq.Eq{"type": contentType})
    }

    return r.queryContents(q)
}

// ListMedia returns every record that carries a generated image.
func (r *ContentRepository) ListMedia() ([]*model.Content, error) {
    q := psql.Select(contentColumns).From("contents").
        Where(sq.NotEq{"image_url": nil}).
        Where(sq.NotEq{"image_url": ""}).
        OrderBy("created_at DESC")
    return r.queryContents(q)
}

func (r *ContentRepository) UpdateStatus(id int, status string) error {
    res, err := r.DB.Exec(`UPDATE contents SET status=$1 WHERE id=$2`, status, id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return appErrors.NewContentNotFound(id)
    }
    return nil
}

// UpdateGenerated completes a record in place: new content, new image URL and a
// status reset to "generated". Used for placeholder completion and regeneration.
func (r *ContentRepository) UpdateGenerated(c *model.Content) error {
    c.Status = model.StatusGenerated
    query := `
        UPDATE contents
        SET content=$1, image_url=NULLIF($2, ''), status=$3
        WHERE id=$4
    `
    res, err := r.DB.Exec(query, c.Content, c.ImageURL, c.Status, c.ID)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return appErrors.NewContentNotFound(c.ID)
    }
    return nil
}

// ====================== helpers ======================

func (r *ContentRepository) queryContents(q sq.SelectBuilder) ([]*model.Content, error) {
    sqlStr, args, err := q.ToSql()
    if err != nil {
        return nil, err
    }

    rows, err := r.DB.Query(sqlStr, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    contents := []*model.Content{}
    for rows.Next() {
        c, err := scanContent(rows)
        if err != nil {
            return nil, err
        }
        contents = append(contents, c)
    }
    return contents, rows.Err()
}

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanContent(row rowScanner) (*model.Content, error) {
    var (
        c        model.Content
        cfg      sql.NullString
        imageURL sql.NullString
        status   sql.NullString
    )
    if err := row.Scan(&c.ID, &c.Type, &c.Prompt, &cfg, &c.Content, &imageURL, &status, &c.CreatedAt); err != nil {
        return nil, err
    }
    c.ImageURL = imageURL.String
    c.Status = status.String
    if cfg.Valid && cfg.String != "" {
        var ec model.EmailConfig
        if err := json.Unmarshal([]byte(cfg.String), &ec); err == nil {
            c.Config = &ec
        }
    }
    return &c, nil
}

func marshalConfig(cfg *model.EmailConfig) (string, error) {
    if cfg == nil {
        return "", nil
    }
    b, err := json.Marshal(cfg)
    if err != nil {
        return "", err
    }
    return string(b), nil
}

var _ ContentRepositoryInterface = (*ContentRepository)(nil)
