package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/theananta/certificate-studio/internal/model"
)

// ErrTemplateNotFound is returned when a certificate template cannot
// be found.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRepo encapsulates database queries for certificate
// templates. The placeholders column stores the designer's JSON
// serialization verbatim; the repository never parses it.
type TemplateRepo struct {
	db *sql.DB
}

// NewTemplateRepo constructs a TemplateRepo with the provided DB
// handle.
func NewTemplateRepo(db *sql.DB) *TemplateRepo {
	return &TemplateRepo{db: db}
}

// Create inserts a new template. An empty name falls back to the
// default and an empty ID gets a fresh UUID.
func (r *TemplateRepo) Create(ctx context.Context, t *model.CertificateTemplate) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Name == "" {
		t.Name = model.DefaultTemplateName
	}
	const q = `INSERT INTO certificate_templates (id, event_id, name, image_url, placeholders) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, t.ID, t.EventID, t.Name, t.ImageURL, t.Placeholders); err != nil {
		return err
	}
	const sel = `SELECT created_at, updated_at FROM certificate_templates WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// Update replaces the background image and placeholder list of an
// existing template. Returns ErrTemplateNotFound when no row matches.
func (r *TemplateRepo) Update(ctx context.Context, id, imageURL, placeholders string) error {
	const q = `UPDATE certificate_templates
	           SET image_url = ?, placeholders = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, imageURL, placeholders, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// GetByID fetches a template by id.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*model.CertificateTemplate, error) {
	const q = `SELECT id, event_id, name, image_url, placeholders, created_at, updated_at
	           FROM certificate_templates WHERE id = ?`
	var t model.CertificateTemplate
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.EventID, &t.Name, &t.ImageURL, &t.Placeholders, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByEvent returns an event's templates, oldest first so the
// "first available template" fallback of bulk generation is stable.
func (r *TemplateRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.CertificateTemplate, error) {
	const q = `SELECT id, event_id, name, image_url, placeholders, created_at, updated_at
	           FROM certificate_templates WHERE event_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CertificateTemplate
	for rows.Next() {
		t := new(model.CertificateTemplate)
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.ImageURL, &t.Placeholders, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a template and, via cascade, every certificate
// issued from it.
func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM certificate_templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
