package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/theananta/certificate-studio/internal/model"
)

// ErrParticipantNotFound is returned when a participant cannot be
// found.
var ErrParticipantNotFound = errors.New("participant not found")

// ParticipantRepo encapsulates database queries for participants.
type ParticipantRepo struct {
	db *sql.DB
}

// NewParticipantRepo constructs a ParticipantRepo with the provided
// DB handle.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// Create inserts a participant under an event. An empty category is
// replaced with the default and an empty ID with a fresh UUID.
func (r *ParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Category == "" {
		p.Category = model.DefaultCategory
	}
	const q = `INSERT INTO participants (id, event_id, name, email, category) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, p.ID, p.EventID, p.Name, p.Email, p.Category); err != nil {
		return err
	}
	const sel = `SELECT created_at FROM participants WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt)
}

// GetByID fetches a single participant.
func (r *ParticipantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	const q = `SELECT id, event_id, name, email, category, created_at FROM participants WHERE id = ?`
	var p model.Participant
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.Category, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByEvent returns all participants of an event in insertion
// order.
func (r *ParticipantRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.Participant, error) {
	const q = `SELECT id, event_id, name, email, category, created_at
	           FROM participants WHERE event_id = ? ORDER BY created_at, id`
	return r.list(ctx, q, eventID)
}

// ListUncertified returns the participants of an event who do not yet
// hold a certificate. This is the eligibility set for bulk
// generation; the uniqueness constraint on certificates.participant_id
// still guards against a concurrent generator issuing twice.
func (r *ParticipantRepo) ListUncertified(ctx context.Context, eventID string) ([]*model.Participant, error) {
	const q = `SELECT p.id, p.event_id, p.name, p.email, p.category, p.created_at
	           FROM participants p
	           LEFT JOIN certificates c ON c.participant_id = p.id
	           WHERE p.event_id = ? AND c.id IS NULL
	           ORDER BY p.created_at, p.id`
	return r.list(ctx, q, eventID)
}

// Delete removes a participant. Any certificate bound to them is
// removed by cascade.
func (r *ParticipantRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepo) list(ctx context.Context, q string, args ...any) ([]*model.Participant, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Participant
	for rows.Next() {
		p := new(model.Participant)
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
