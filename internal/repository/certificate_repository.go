// This file implements the certificate draft/assignment state
// machine at the storage layer: Draft (participant_id NULL) to
// Assigned (participant_id set), with revocation as the only exit
// from either state.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/theananta/certificate-studio/internal/model"
	"github.com/theananta/certificate-studio/internal/utils"
)

// ErrCertificateNotFound is returned when a certificate cannot be
// found by id or by participant email.
var ErrCertificateNotFound = errors.New("certificate not found")

// CertificateRepo encapsulates database queries for certificates.
type CertificateRepo struct {
	db *sql.DB
}

// NewCertificateRepo constructs a CertificateRepo with the provided
// DB handle.
func NewCertificateRepo(db *sql.DB) *CertificateRepo {
	return &CertificateRepo{db: db}
}

// CreateDraft inserts an unassigned certificate for a template. When
// customID is empty a generated CERT-XXXXXXXX id is used. A collision
// on a caller-supplied id returns ErrDuplicateID with no partial
// write; collisions on generated ids are retried a few times before
// giving up.
func (r *CertificateRepo) CreateDraft(ctx context.Context, templateID, customID string) (*model.Certificate, error) {
	const q = `INSERT INTO certificates (id, template_id) VALUES (?, ?)`

	if customID != "" {
		if _, err := r.db.ExecContext(ctx, q, customID, templateID); err != nil {
			if isDuplicateKey(err, "primary") {
				return nil, ErrDuplicateID
			}
			return nil, err
		}
		return r.GetByID(ctx, customID)
	}

	for attempt := 0; attempt < 3; attempt++ {
		id, err := utils.NewCertificateID()
		if err != nil {
			return nil, err
		}
		if _, err := r.db.ExecContext(ctx, q, id, templateID); err != nil {
			if isDuplicateKey(err, "primary") {
				continue // extremely unlikely; draw again
			}
			return nil, err
		}
		return r.GetByID(ctx, id)
	}
	return nil, ErrDuplicateID
}

// AssignDraft creates a participant under the event and binds the
// draft certificate to them, both inside one transaction so the state
// transition is atomic: either the participant exists and the
// certificate is assigned, or neither happened. The error return is
// named so the deferred commit's outcome reaches the caller.
func (r *CertificateRepo) AssignDraft(ctx context.Context, certID string, p *model.Participant) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// The draft must exist and be unassigned.
	var current sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT participant_id FROM certificates WHERE id = ? FOR UPDATE`, certID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCertificateNotFound
		}
		return err
	}
	if current.Valid {
		err = ErrConflict
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Category == "" {
		p.Category = model.DefaultCategory
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO participants (id, event_id, name, email, category) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.EventID, p.Name, p.Email, p.Category)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE certificates SET participant_id = ? WHERE id = ?`, p.ID, certID)
	return err
}

// CreateAssigned inserts a certificate already bound to a
// participant, skipping the draft state; used by bulk generation.
// ErrAlreadyIssued is returned when the participant picked up a
// certificate since the eligibility query ran.
func (r *CertificateRepo) CreateAssigned(ctx context.Context, templateID, participantID string) (*model.Certificate, error) {
	for attempt := 0; attempt < 3; attempt++ {
		id, err := utils.NewCertificateID()
		if err != nil {
			return nil, err
		}
		const q = `INSERT INTO certificates (id, template_id, participant_id) VALUES (?, ?, ?)`
		if _, err := r.db.ExecContext(ctx, q, id, templateID, participantID); err != nil {
			if isDuplicateKey(err, "uq_certificates_participant") {
				return nil, ErrAlreadyIssued
			}
			if isDuplicateKey(err, "primary") {
				continue
			}
			return nil, err
		}
		return r.GetByID(ctx, id)
	}
	return nil, ErrDuplicateID
}

// GetByID fetches a certificate by its public identifier.
func (r *CertificateRepo) GetByID(ctx context.Context, id string) (*model.Certificate, error) {
	const q = `SELECT id, template_id, participant_id, issued_at FROM certificates WHERE id = ?`
	return scanCertificate(r.db.QueryRowContext(ctx, q, id))
}

// GetByParticipantEmail returns the first certificate held by any
// participant with the given email, oldest first so repeat lookups
// stay stable.
func (r *CertificateRepo) GetByParticipantEmail(ctx context.Context, email string) (*model.Certificate, error) {
	const q = `SELECT c.id, c.template_id, c.participant_id, c.issued_at
	           FROM certificates c
	           JOIN participants p ON p.id = c.participant_id
	           WHERE p.email = ?
	           ORDER BY c.issued_at, c.id
	           LIMIT 1`
	return scanCertificate(r.db.QueryRowContext(ctx, q, email))
}

// ListByEvent returns every certificate issued under an event,
// whether bound through a participant or still a draft hanging off a
// template.
func (r *CertificateRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.Certificate, error) {
	const q = `SELECT c.id, c.template_id, c.participant_id, c.issued_at
	           FROM certificates c
	           JOIN certificate_templates t ON t.id = c.template_id
	           WHERE t.event_id = ?
	           ORDER BY c.issued_at, c.id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Certificate
	for rows.Next() {
		c := new(model.Certificate)
		var pid sql.NullString
		if err := rows.Scan(&c.ID, &c.TemplateID, &pid, &c.IssuedAt); err != nil {
			return nil, err
		}
		if pid.Valid {
			s := pid.String
			c.ParticipantID = &s
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Revoke deletes a certificate unconditionally. Revocation is
// terminal: there is no soft delete and no audit row, and a
// subsequent verification of the id reports not found.
func (r *CertificateRepo) Revoke(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM certificates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCertificateNotFound
	}
	return nil
}

func scanCertificate(row *sql.Row) (*model.Certificate, error) {
	var c model.Certificate
	var pid sql.NullString
	if err := row.Scan(&c.ID, &c.TemplateID, &pid, &c.IssuedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	if pid.Valid {
		s := pid.String
		c.ParticipantID = &s
	}
	return &c, nil
}
