package project

import (
	"context"

	"github.com/icarus-portal/icarus-api/internal/domain/user"
)

// Repository provides persistence for projects. ReserveVacancy and
// ReleaseVacancy are atomic single-statement counter updates; the vacancy
// count is never read-modify-written by callers.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
	Search(ctx context.Context, query string, limit int) ([]Project, error)
	ReserveVacancy(ctx context.Context, projectID string) error
	ReleaseVacancy(ctx context.Context, projectID string) error
}

// UserDirectory is the slice of the user store the project service needs to
// snapshot owner fields at creation time.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
}
