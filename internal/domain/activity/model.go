package activity

import "time"

// EventType identifies a lifecycle event in the activity feed.
type EventType string

const (
	TypeApplied   EventType = "applied"
	TypeSelected  EventType = "selected"
	TypeRejected  EventType = "rejected"
	TypeAccepted  EventType = "accepted"
	TypeDeclined  EventType = "declined"
	TypeCancelled EventType = "cancelled"
)

// Entry is one event in the activity feed. ProfessorID is denormalized from
// the project so the owning professor's feed is a single indexed query.
type Entry struct {
	ID            int64     `json:"id"`
	ProjectID     string    `json:"project_id"`
	ApplicationID string    `json:"application_id,omitempty"`
	ProfessorID   string    `json:"professor_id"`
	ActorID       string    `json:"actor_id"`
	Type          EventType `json:"type"`
	Summary       string    `json:"summary"`
	CreatedAt     time.Time `json:"created_at"`
}
