package model

import "time"

// DefaultCategory is assigned to participants added without an
// explicit category.
const DefaultCategory = "General"

// Participant is a person attached to an event who may receive a
// certificate, as stored in the `participants` table. A participant
// belongs to exactly one event and holds at most one certificate at a
// time; that invariant is enforced by a uniqueness constraint on
// certificates.participant_id rather than by application-side checks
// alone.
//
// Fields:
//  ID        – primary key (UUID string).
//  EventID   – owning event.
//  Name      – participant's display name.
//  Email     – contact address; also usable for certificate lookup.
//  Category  – award category (defaults to DefaultCategory).
//  CreatedAt – creation timestamp.
type Participant struct {
	ID        string    // participants.id
	EventID   string    // participants.event_id
	Name      string    // participants.name
	Email     string    // participants.email
	Category  string    // participants.category
	CreatedAt time.Time // participants.created_at
}
