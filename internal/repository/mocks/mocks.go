package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
)

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) SaveResume(ctx context.Context, studentID string, resume *user.Resume) error {
	args := m.Called(ctx, studentID, resume)
	return args.Error(0)
}

func (m *UserRepository) GetResume(ctx context.Context, studentID string) (*user.Resume, error) {
	args := m.Called(ctx, studentID)
	if r, ok := args.Get(0).(*user.Resume); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) HasResume(ctx context.Context, studentID string) (bool, error) {
	args := m.Called(ctx, studentID)
	return args.Bool(0), args.Error(1)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Search(ctx context.Context, query string, limit int) ([]project.Project, error) {
	args := m.Called(ctx, query, limit)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ReserveVacancy(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *ProjectRepository) ReleaseVacancy(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// ApplicationRepository is a mock for repository.ApplicationRepository.
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) FindByStudentAndProject(ctx context.Context, studentID, projectID string) (*application.Application, error) {
	args := m.Called(ctx, studentID, projectID)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) Transition(ctx context.Context, id string, from, to application.Status, unreadForStudent, unreadForProfessor bool) error {
	args := m.Called(ctx, id, from, to, unreadForStudent, unreadForProfessor)
	return args.Error(0)
}

func (m *ApplicationRepository) DeleteIfStatus(ctx context.Context, id string, status application.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]application.Application, error) {
	args := m.Called(ctx, studentID)
	if list, ok := args.Get(0).([]application.Application); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) ListByProfessor(ctx context.Context, professorID string) ([]application.Application, error) {
	args := m.Called(ctx, professorID)
	if list, ok := args.Get(0).([]application.Application); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) HasUnread(ctx context.Context, userID string, role user.Role) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *ApplicationRepository) MarkViewed(ctx context.Context, userID string, role user.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) ListByProfessor(ctx context.Context, professorID string, limit int) ([]activity.Entry, error) {
	args := m.Called(ctx, professorID, limit)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
