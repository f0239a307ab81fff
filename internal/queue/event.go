// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions a CertificateEvent can describe.
const (
	ActionDraftCreated = "DRAFT_CREATED"
	ActionAssigned     = "ASSIGNED"
	ActionGenerated    = "GENERATED"
	ActionRevoked      = "REVOKED"
)

// CertificateEvent is published whenever a certificate changes state:
// a draft is created, a draft is assigned, bulk generation issues a
// batch member, or a certificate is revoked. It carries enough data
// for downstream consumers to log or notify without querying the
// primary database. Revocation events are the only durable trace a
// revoked certificate leaves, since the row itself is deleted.
type CertificateEvent struct {
	Action          string `json:"action"`
	CertificateID   string `json:"certificate_id"`
	TemplateID      string `json:"template_id"`
	EventID         string `json:"event_id,omitempty"`
	EventName       string `json:"event_name,omitempty"`
	ParticipantID   string `json:"participant_id,omitempty"`
	ParticipantName string `json:"participant_name,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}
