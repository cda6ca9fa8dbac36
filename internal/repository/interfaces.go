package repository

import (
	"context"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
)

// UserRepository manages user and résumé persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, u *user.User) error
	SaveResume(ctx context.Context, studentID string, resume *user.Resume) error
	GetResume(ctx context.Context, studentID string) (*user.Resume, error)
	HasResume(ctx context.Context, studentID string) (bool, error)
}

// ProjectRepository manages project persistence. ReserveVacancy decrements the
// vacancy counter atomically, clamping at zero; ReleaseVacancy increments it,
// capped at the originally posted count.
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Search(ctx context.Context, query string, limit int) ([]project.Project, error)
	ReserveVacancy(ctx context.Context, projectID string) error
	ReleaseVacancy(ctx context.Context, projectID string) error
}

// ApplicationRepository manages application persistence. Transition and
// DeleteIfStatus apply only when the row still holds the expected status and
// return ErrConflict otherwise.
type ApplicationRepository interface {
	Create(ctx context.Context, app *application.Application) error
	Get(ctx context.Context, id string) (*application.Application, error)
	FindByStudentAndProject(ctx context.Context, studentID, projectID string) (*application.Application, error)
	Transition(ctx context.Context, id string, from, to application.Status, unreadForStudent, unreadForProfessor bool) error
	DeleteIfStatus(ctx context.Context, id string, status application.Status) error
	ListByStudent(ctx context.Context, studentID string) ([]application.Application, error)
	ListByProfessor(ctx context.Context, professorID string) ([]application.Application, error)
	HasUnread(ctx context.Context, userID string, role user.Role) (bool, error)
	MarkViewed(ctx context.Context, userID string, role user.Role) error
}

// ActivityRepository manages activity feed persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
	ListByProfessor(ctx context.Context, professorID string, limit int) ([]activity.Entry, error)
}

// TokenRepository maps opaque access tokens to user ids. Token issuance and
// verification beyond this mapping belong to the external identity provider.
type TokenRepository interface {
	Issue(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
}
