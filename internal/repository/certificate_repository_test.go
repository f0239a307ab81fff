package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/theananta/certificate-studio/internal/model"
)

func assignParticipant() *model.Participant {
	return &model.Participant{
		ID:       "p-1",
		EventID:  "e-1",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Category: "Participant",
	}
}

func expectAssignQueries(mock sqlmock.Sqlmock, certID string, p *model.Participant) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT participant_id FROM certificates WHERE id = ? FOR UPDATE`)).
		WithArgs(certID).
		WillReturnRows(sqlmock.NewRows([]string{"participant_id"}).AddRow(nil))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO participants (id, event_id, name, email, category) VALUES (?, ?, ?, ?, ?)`)).
		WithArgs(p.ID, p.EventID, p.Name, p.Email, p.Category).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE certificates SET participant_id = ? WHERE id = ?`)).
		WithArgs(p.ID, certID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestAssignDraftCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	p := assignParticipant()
	mock.ExpectBegin()
	expectAssignQueries(mock, "CERT-AAAA1111", p)
	mock.ExpectCommit()

	repo := NewCertificateRepo(db)
	if err := repo.AssignDraft(context.Background(), "CERT-AAAA1111", p); err != nil {
		t.Fatalf("AssignDraft: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignDraftReportsCommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	p := assignParticipant()
	commitErr := errors.New("commit failed")
	mock.ExpectBegin()
	expectAssignQueries(mock, "CERT-AAAA1111", p)
	mock.ExpectCommit().WillReturnError(commitErr)

	repo := NewCertificateRepo(db)
	err = repo.AssignDraft(context.Background(), "CERT-AAAA1111", p)
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignDraftRejectsAssignedCertificate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT participant_id FROM certificates WHERE id = ? FOR UPDATE`)).
		WithArgs("CERT-AAAA1111").
		WillReturnRows(sqlmock.NewRows([]string{"participant_id"}).AddRow("p-0"))
	mock.ExpectRollback()

	repo := NewCertificateRepo(db)
	err = repo.AssignDraft(context.Background(), "CERT-AAAA1111", assignParticipant())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignDraftMissingCertificate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT participant_id FROM certificates WHERE id = ? FOR UPDATE`)).
		WithArgs("CERT-MISSING0").
		WillReturnRows(sqlmock.NewRows([]string{"participant_id"}))
	mock.ExpectRollback()

	repo := NewCertificateRepo(db)
	err = repo.AssignDraft(context.Background(), "CERT-MISSING0", assignParticipant())
	if !errors.Is(err, ErrCertificateNotFound) {
		t.Fatalf("expected ErrCertificateNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
