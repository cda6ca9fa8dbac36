package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repository"
	"github.com/icarus-portal/icarus-api/internal/repository/mocks"
)

func TestRegister_Student(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := user.NewService(repo, nil)
	u, err := svc.Register(ctx, user.RegisterRequest{
		NUSP:        "11223344",
		Name:        "Ana Souza",
		Email:       "Ana.Souza@usp.br",
		Role:        user.RoleStudent,
		Course:      "Computer Engineering",
		IdealPeriod: 7,
	})
	require.NoError(t, err)
	require.Equal(t, "ana.souza@usp.br", u.Email)
	require.NotNil(t, u.Student)
	require.Nil(t, u.Professor)
	require.Equal(t, 7, u.Student.IdealPeriod)
	require.NotEmpty(t, u.ID)
}

func TestRegister_Professor(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := user.NewService(repo, nil)
	u, err := svc.Register(ctx, user.RegisterRequest{
		Name:       "Dr. Carla Lima",
		Email:      "carla@usp.br",
		Role:       user.RoleProfessor,
		Faculty:    "Polytechnic School",
		Department: "Computer Engineering",
	})
	require.NoError(t, err)
	require.NotNil(t, u.Professor)
	require.Nil(t, u.Student)
	require.Equal(t, "Polytechnic School", u.Professor.Faculty)
}

func TestRegister_Validation(t *testing.T) {
	svc := user.NewService(&mocks.UserRepository{}, nil)

	_, err := svc.Register(context.Background(), user.RegisterRequest{Name: "", Email: "x@usp.br", Role: user.RoleStudent})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, err = svc.Register(context.Background(), user.RegisterRequest{Name: "Ana", Email: "", Role: user.RoleStudent})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, err = svc.Register(context.Background(), user.RegisterRequest{Name: "Ana", Email: "x@usp.br", Role: "admin"})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	svc := user.NewService(repo, nil)
	_, err := svc.Register(ctx, user.RegisterRequest{
		Name: "Ana", Email: "ana@usp.br", Role: user.RoleStudent,
	})
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUpdateProfile_PartialEdit(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "s1").Return(&user.User{
		ID: "s1", Name: "Ana", Role: user.RoleStudent,
		Student: &user.StudentProfile{Course: "CS", IdealPeriod: 5},
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	course := "Computer Engineering"
	svc := user.NewService(repo, nil)
	u, err := svc.UpdateProfile(ctx, "s1", user.UpdateProfileRequest{Course: &course})
	require.NoError(t, err)
	require.Equal(t, "Computer Engineering", u.Student.Course)
	require.Equal(t, 5, u.Student.IdealPeriod)
	require.Equal(t, "Ana", u.Name)
}

func TestUploadResume_RejectsUnknownExtension(t *testing.T) {
	svc := user.NewService(&mocks.UserRepository{}, nil)

	_, err := svc.UploadResume(context.Background(), "s1", user.Resume{
		FileName: "resume.exe", Content: []byte("x"),
	})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	_, err = svc.UploadResume(context.Background(), "s1", user.Resume{
		FileName: "resume.pdf", Content: nil,
	})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUploadResume_StudentOnly(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "prof1").Return(&user.User{ID: "prof1", Role: user.RoleProfessor}, nil)

	svc := user.NewService(repo, nil)
	_, err := svc.UploadResume(ctx, "prof1", user.Resume{FileName: "cv.pdf", Content: []byte("x")})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUploadResume_Stores(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "s1").Return(&user.User{
		ID: "s1", Role: user.RoleStudent, Student: &user.StudentProfile{},
	}, nil)
	repo.On("SaveResume", ctx, "s1", mock.Anything).Return(nil)

	svc := user.NewService(repo, nil)
	u, err := svc.UploadResume(ctx, "s1", user.Resume{FileName: "cv.pdf", Content: []byte("%PDF-1.4")})
	require.NoError(t, err)
	require.Equal(t, "cv.pdf", u.Student.ResumeFileName)
}

func TestGetResume_Missing(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("GetResume", ctx, "s1").Return(nil, repository.ErrNotFound)

	svc := user.NewService(repo, nil)
	_, err := svc.GetResume(ctx, "s1")
	require.ErrorIs(t, err, user.ErrNoResume)
}
