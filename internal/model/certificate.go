package model

import "time"

// Certificate is an issued certificate record from the `certificates`
// table. Its lifecycle has two states: Draft (ParticipantID nil,
// pre-generated and unassigned) and Assigned (ParticipantID set).
// Assignment is irreversible in the normal flow; the only exit from
// either state is revocation, which deletes the row outright.
//
// The ID doubles as the public verification identifier. It is either
// supplied by the organizer (a human-readable code) or generated, and
// is globally unique but not secret.
//
// Fields:
//  ID            – primary key; free-form string, used in verify URLs.
//  TemplateID    – template the certificate renders with.
//  ParticipantID – bound participant, nil while the record is a draft.
//  IssuedAt      – when the record was created.
type Certificate struct {
	ID            string    // certificates.id
	TemplateID    string    // certificates.template_id
	ParticipantID *string   // certificates.participant_id (nullable)
	IssuedAt      time.Time // certificates.issued_at
}

// IsDraft reports whether the certificate is still unassigned.
func (c Certificate) IsDraft() bool { return c.ParticipantID == nil }
