package model

import "time"

// DefaultTemplateName is used when a template is saved from the
// designer without an explicit name.
const DefaultTemplateName = "Certificate Template"

// CertificateTemplate couples a background image with a serialized
// placeholder list, as stored in the `certificate_templates` table.
// A template belongs to one event; an event may own many templates.
//
// Placeholders holds the raw JSON-encoded array exactly as written by
// the designer. Callers parse it with ParsePlaceholders before use
// and re-encode with EncodePlaceholders before writing, so the stored
// form round-trips byte-for-byte through the repository layer.
//
// Fields:
//  ID           – primary key (UUID string).
//  EventID      – owning event.
//  Name         – template display name.
//  ImageURL     – background image location (local path or signed URL).
//  Placeholders – JSON-encoded []Placeholder.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type CertificateTemplate struct {
	ID           string    // certificate_templates.id
	EventID      string    // certificate_templates.event_id
	Name         string    // certificate_templates.name
	ImageURL     string    // certificate_templates.image_url
	Placeholders string    // certificate_templates.placeholders (JSON text)
	CreatedAt    time.Time // certificate_templates.created_at
	UpdatedAt    time.Time // certificate_templates.updated_at
}
