package activity

import "context"

// Repository provides persistence for the activity feed.
type Repository interface {
	Log(ctx context.Context, entry *Entry) error
	ListByProfessor(ctx context.Context, professorID string, limit int) ([]Entry, error)
}
