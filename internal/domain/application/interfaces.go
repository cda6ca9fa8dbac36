package application

import (
	"context"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
)

// Repository provides persistence for applications. Transition and
// DeleteIfStatus are compare-and-swap operations: they apply only when the row
// is still in the expected status and return repository.ErrConflict otherwise.
type Repository interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id string) (*Application, error)
	FindByStudentAndProject(ctx context.Context, studentID, projectID string) (*Application, error)
	Transition(ctx context.Context, id string, from, to Status, unreadForStudent, unreadForProfessor bool) error
	DeleteIfStatus(ctx context.Context, id string, status Status) error
	ListByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListByProfessor(ctx context.Context, professorID string) ([]Application, error)
}

// ProjectStore is the slice of the project store the engine needs: lookups
// plus the atomic vacancy counter primitives.
type ProjectStore interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	ReserveVacancy(ctx context.Context, projectID string) error
	ReleaseVacancy(ctx context.Context, projectID string) error
}

// StudentDirectory is the slice of the user store the engine needs.
type StudentDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
	HasResume(ctx context.Context, studentID string) (bool, error)
}

// ActivityLog records lifecycle events, best effort.
type ActivityLog interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
