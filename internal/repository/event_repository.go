// This file defines repository methods for events. An event owns the
// templates and participants that certificates are issued under; its
// dependents are removed by the schema's ON DELETE CASCADE rules.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/theananta/certificate-studio/internal/model"
)

// ErrEventNotFound is returned when an event cannot be found.
var ErrEventNotFound = errors.New("event not found")

// ErrSlugExists is returned when creating an event whose slug is
// already taken.
var ErrSlugExists = errors.New("event slug already exists")

// EventRepo encapsulates all database queries related to events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create inserts a new event. A fresh UUID is assigned when the
// caller left the ID empty. After the insert a follow-up SELECT
// populates the timestamp fields so callers receive a full record.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const qInsert = `INSERT INTO events (id, name, slug, start_date, end_date) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, qInsert, e.ID, e.Name, e.Slug, e.StartDate, e.EndDate); err != nil {
		if isDuplicateKey(err, "uq_events_slug") {
			return ErrSlugExists
		}
		return err
	}
	const qSelect = `SELECT created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID fetches an event by id, returning ErrEventNotFound when no
// row exists.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	const q = `SELECT id, name, slug, start_date, end_date, created_at, updated_at FROM events WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetBySlug fetches an event by its unique slug.
func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	const q = `SELECT id, name, slug, start_date, end_date, created_at, updated_at FROM events WHERE slug = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, slug))
}

// List returns all events, newest first.
func (r *EventRepo) List(ctx context.Context) ([]*model.Event, error) {
	const q = `SELECT id, name, slug, start_date, end_date, created_at, updated_at
	           FROM events ORDER BY start_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		e := new(model.Event)
		var end sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.StartDate, &end, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if end.Valid {
			t := end.Time
			e.EndDate = &t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an event; templates, participants and certificates
// under it go with it via the cascade rules. Returns ErrEventNotFound
// when no row was affected.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepo) scanOne(row *sql.Row) (*model.Event, error) {
	var e model.Event
	var end sql.NullTime
	if err := row.Scan(&e.ID, &e.Name, &e.Slug, &e.StartDate, &end, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if end.Valid {
		t := end.Time
		e.EndDate = &t
	}
	return &e, nil
}
