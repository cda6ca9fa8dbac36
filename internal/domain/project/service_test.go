package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repository/mocks"
)

func professor(id string) *user.User {
	return &user.User{
		ID:   id,
		Name: "Dr. Carla Lima",
		Role: user.RoleProfessor,
		Professor: &user.ProfessorProfile{
			Faculty:    "Polytechnic School",
			Department: "Computer Engineering",
		},
	}
}

func TestCreate_SnapshotsOwner(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	users := &mocks.UserRepository{}

	users.On("Get", ctx, "prof1").Return(professor("prof1"), nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, users, nil)
	proj, err := svc.Create(ctx, "prof1", project.CreateRequest{
		Title:     "Robot Soccer Vision",
		Area:      "Robotics",
		Vacancies: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "prof1", proj.ProfessorID)
	require.Equal(t, "Dr. Carla Lima", proj.ProfessorName)
	require.Equal(t, "Polytechnic School", proj.Faculty)
	require.Equal(t, "Computer Engineering", proj.Department)
	require.Equal(t, 3, proj.Vacancies)
	require.Equal(t, 3, proj.PostedVacancies)
	require.NotEmpty(t, proj.ID)
}

func TestCreate_RejectsStudents(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserRepository{}
	users.On("Get", ctx, "s1").Return(&user.User{ID: "s1", Role: user.RoleStudent}, nil)

	svc := project.NewService(&mocks.ProjectRepository{}, users, nil)
	_, err := svc.Create(ctx, "s1", project.CreateRequest{Title: "x", Vacancies: 1})
	require.ErrorIs(t, err, project.ErrForbidden)
}

func TestCreate_ValidatesInput(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, &mocks.UserRepository{}, nil)

	_, err := svc.Create(context.Background(), "prof1", project.CreateRequest{Title: "  "})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "prof1", project.CreateRequest{Title: "x", Vacancies: -1})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ProfessorID: "prof1"}, nil)

	svc := project.NewService(repo, &mocks.UserRepository{}, nil)
	_, err := svc.Update(ctx, "intruder", "p1", project.UpdateRequest{})
	require.ErrorIs(t, err, project.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_VacanciesRebasesPostedCount(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{
		ID: "p1", ProfessorID: "prof1", Title: "Old", Vacancies: 1, PostedVacancies: 2,
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	five := 5
	svc := project.NewService(repo, &mocks.UserRepository{}, nil)
	proj, err := svc.Update(ctx, "prof1", "p1", project.UpdateRequest{Vacancies: &five})
	require.NoError(t, err)
	require.Equal(t, 5, proj.Vacancies)
	require.Equal(t, 5, proj.PostedVacancies)
}

func TestUpdate_PartialEditKeepsOtherFields(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{
		ID: "p1", ProfessorID: "prof1", Title: "Old", Area: "Robotics", Vacancies: 2, PostedVacancies: 2,
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	title := "New Title"
	svc := project.NewService(repo, &mocks.UserRepository{}, nil)
	proj, err := svc.Update(ctx, "prof1", "p1", project.UpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "New Title", proj.Title)
	require.Equal(t, "Robotics", proj.Area)
	require.Equal(t, 2, proj.Vacancies)
}

func TestSearch_EmptyQueryListsAll(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{{ID: "p1"}, {ID: "p2"}}, nil)

	svc := project.NewService(repo, &mocks.UserRepository{}, nil)
	list, err := svc.Search(ctx, "   ", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_DefaultsLimit(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Search", ctx, "robotics", 50).Return([]project.Project{{ID: "p1"}}, nil)

	svc := project.NewService(repo, &mocks.UserRepository{}, nil)
	list, err := svc.Search(ctx, "robotics", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestListByProfessor_FiltersOwnership(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{
		{ID: "p1", ProfessorID: "prof1"},
		{ID: "p2", ProfessorID: "prof2"},
		{ID: "p3", ProfessorID: "prof1"},
	}, nil)

	svc := project.NewService(repo, &mocks.UserRepository{}, nil)
	own, err := svc.ListByProfessor(ctx, "prof1")
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, p := range own {
		require.Equal(t, "prof1", p.ProfessorID)
	}
}
