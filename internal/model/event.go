package model

import "time"

// Event represents a ceremony or occasion for which certificates are
// issued, as stored in the `events` table. An event owns zero or more
// certificate templates and participants; both are removed by cascade
// when the event is deleted.
//
// Fields:
//  ID        – primary key (UUID string).
//  Name      – human-readable event name.
//  Slug      – unique URL-friendly identifier.
//  StartDate – when the event begins.
//  EndDate   – optional end for multi-day events (nil when single-day).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Event struct {
	ID        string     // events.id
	Name      string     // events.name
	Slug      string     // events.slug (unique)
	StartDate time.Time  // events.start_date
	EndDate   *time.Time // events.end_date (nullable)
	CreatedAt time.Time  // events.created_at
	UpdatedAt time.Time  // events.updated_at
}
