package application

import "time"

// Status is the lifecycle state of an application.
//
//	pending -> selected -> accepted
//	pending -> selected -> declined
//	pending -> not_selected
//
// Applications in pending or selected may also be cancelled (deleted) by the
// owning student.
type Status string

const (
	StatusPending     Status = "pending"
	StatusSelected    Status = "selected"
	StatusNotSelected Status = "not_selected"
	StatusAccepted    Status = "accepted"
	StatusDeclined    Status = "declined"
)

// Terminal reports whether no further transition is possible from the status.
func (s Status) Terminal() bool {
	return s == StatusNotSelected || s == StatusAccepted || s == StatusDeclined
}

// Application links one student to one project. ProfessorID is denormalized
// from the project at creation for professor-scoped queries.
type Application struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	ProjectID   string `json:"project_id"`
	ProfessorID string `json:"professor_id"`
	Motivation  string `json:"motivation"`
	Status      Status `json:"status"`
	// ViewedByStudent and ViewedByProfessor drive the unread badges.
	ViewedByStudent   bool      `json:"viewed_by_student"`
	ViewedByProfessor bool      `json:"viewed_by_professor"`
	AppliedAt         time.Time `json:"applied_at"`
}
