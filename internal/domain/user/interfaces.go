package user

import "context"

// Repository provides persistence for users and résumés.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	SaveResume(ctx context.Context, studentID string, resume *Resume) error
	GetResume(ctx context.Context, studentID string) (*Resume, error)
	HasResume(ctx context.Context, studentID string) (bool, error)
}
