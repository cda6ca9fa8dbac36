package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/notification"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/sqlite"
)

type testEnv struct {
	db        *sqlite.DB
	tokenRepo *sqlite.TokenRepository

	userSvc         *user.Service
	projectSvc      *project.Service
	applicationSvc  *application.Service
	notificationSvc *notification.Service
	activitySvc     *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	applicationRepo := sqlite.NewApplicationRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)

	userSvc := user.NewService(userRepo, nil)
	projectSvc := project.NewService(projectRepo, userRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)
	applicationSvc := application.NewService(applicationRepo, projectRepo, userRepo, activitySvc, nil)
	notificationSvc := notification.NewService(applicationRepo, nil)

	return &testEnv{
		db:              db,
		tokenRepo:       tokenRepo,
		userSvc:         userSvc,
		projectSvc:      projectSvc,
		applicationSvc:  applicationSvc,
		notificationSvc: notificationSvc,
		activitySvc:     activitySvc,
	}
}

func (env *testEnv) registerStudent(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := env.userSvc.Register(context.Background(), user.RegisterRequest{
		NUSP:        "11223344",
		Name:        name,
		Email:       strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@usp.br",
		Role:        user.RoleStudent,
		Course:      "Computer Engineering",
		IdealPeriod: 7,
	})
	require.NoError(t, err)

	_, err = env.userSvc.UploadResume(context.Background(), u.ID, user.Resume{
		FileName: "cv.pdf",
		Content:  []byte("%PDF-1.4 resume for " + name),
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) registerProfessor(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := env.userSvc.Register(context.Background(), user.RegisterRequest{
		Name:       name,
		Email:      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@usp.br",
		Role:       user.RoleProfessor,
		Faculty:    "Polytechnic School",
		Department: "Computer Engineering",
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) postProject(t *testing.T, professorID string, vacancies int) *project.Project {
	t.Helper()
	proj, err := env.projectSvc.Create(context.Background(), professorID, project.CreateRequest{
		Title:     "Compiler Optimizations",
		Area:      "Systems",
		Keywords:  []string{"compilers", "llvm"},
		Vacancies: vacancies,
	})
	require.NoError(t, err)
	return proj
}

func (env *testEnv) vacancies(t *testing.T, projectID string) int {
	t.Helper()
	proj, err := env.projectSvc.Get(context.Background(), projectID)
	require.NoError(t, err)
	return proj.Vacancies
}

func TestIntegration_SelectThenDeclineRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	ana := env.registerStudent(t, "Ana Souza")
	bia := env.registerStudent(t, "Bia Ramos")
	proj := env.postProject(t, prof.ID, 2)

	appAna, err := env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "I love compilers")
	require.NoError(t, err)
	appBia, err := env.applicationSvc.Apply(ctx, bia.ID, proj.ID, "Me too")
	require.NoError(t, err)

	// both candidatures show up unread on the professor side
	badge, err := env.notificationSvc.Badge(ctx, prof.ID, user.RoleProfessor)
	require.NoError(t, err)
	require.True(t, badge.Unread)

	// selecting each reserves a seat
	_, err = env.applicationSvc.Select(ctx, prof.ID, appAna.ID)
	require.NoError(t, err)
	require.Equal(t, 1, env.vacancies(t, proj.ID))

	_, err = env.applicationSvc.Select(ctx, prof.ID, appBia.ID)
	require.NoError(t, err)
	require.Equal(t, 0, env.vacancies(t, proj.ID))

	// selection outcomes are unread on the student side
	badge, err = env.notificationSvc.Badge(ctx, ana.ID, user.RoleStudent)
	require.NoError(t, err)
	require.True(t, badge.Unread)

	// Ana accepts, Bia declines and her seat returns
	accepted, err := env.applicationSvc.Respond(ctx, ana.ID, appAna.ID, true)
	require.NoError(t, err)
	require.Equal(t, application.StatusAccepted, accepted.Status)
	require.Equal(t, 0, env.vacancies(t, proj.ID))

	declined, err := env.applicationSvc.Respond(ctx, bia.ID, appBia.ID, false)
	require.NoError(t, err)
	require.Equal(t, application.StatusDeclined, declined.Status)
	require.Equal(t, 1, env.vacancies(t, proj.ID))

	// lifecycle events landed in the professor's feed
	entries, err := env.activitySvc.Feed(ctx, prof.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 6)
}

func TestIntegration_CancelWhileSelectedReleasesSeat(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	ana := env.registerStudent(t, "Ana Souza")
	proj := env.postProject(t, prof.ID, 1)

	app, err := env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation")
	require.NoError(t, err)

	_, err = env.applicationSvc.Select(ctx, prof.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, 0, env.vacancies(t, proj.ID))

	require.NoError(t, env.applicationSvc.Cancel(ctx, ana.ID, app.ID))
	require.Equal(t, 1, env.vacancies(t, proj.ID))

	_, err = env.applicationSvc.Get(ctx, ana.ID, app.ID)
	require.ErrorIs(t, err, application.ErrApplicationNotFound)
}

func TestIntegration_CancelWhilePendingKeepsCounter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	ana := env.registerStudent(t, "Ana Souza")
	proj := env.postProject(t, prof.ID, 1)

	app, err := env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation")
	require.NoError(t, err)

	require.NoError(t, env.applicationSvc.Cancel(ctx, ana.ID, app.ID))
	require.Equal(t, 1, env.vacancies(t, proj.ID))

	// once cancelled, the student may apply again
	_, err = env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation, take two")
	require.NoError(t, err)
}

func TestIntegration_RejectAfterSelectFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	ana := env.registerStudent(t, "Ana Souza")
	proj := env.postProject(t, prof.ID, 2)

	app, err := env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation")
	require.NoError(t, err)

	_, err = env.applicationSvc.Select(ctx, prof.ID, app.ID)
	require.NoError(t, err)

	_, err = env.applicationSvc.Reject(ctx, prof.ID, app.ID)
	require.ErrorIs(t, err, application.ErrInvalidTransition)
	require.Equal(t, 1, env.vacancies(t, proj.ID), "failed reject must not disturb the counter")
}

func TestIntegration_SelectionBeyondCapacityClampsAtZero(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	ana := env.registerStudent(t, "Ana Souza")
	bia := env.registerStudent(t, "Bia Ramos")
	proj := env.postProject(t, prof.ID, 1)

	appAna, err := env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "first")
	require.NoError(t, err)
	appBia, err := env.applicationSvc.Apply(ctx, bia.ID, proj.ID, "second")
	require.NoError(t, err)

	_, err = env.applicationSvc.Select(ctx, prof.ID, appAna.ID)
	require.NoError(t, err)
	_, err = env.applicationSvc.Select(ctx, prof.ID, appBia.ID)
	require.NoError(t, err)
	require.Equal(t, 0, env.vacancies(t, proj.ID))

	// both decline; the counter returns to the posted capacity and no further
	require.Equal(t, 1, proj.PostedVacancies)
	_, err = env.applicationSvc.Respond(ctx, ana.ID, appAna.ID, false)
	require.NoError(t, err)
	_, err = env.applicationSvc.Respond(ctx, bia.ID, appBia.ID, false)
	require.NoError(t, err)
	require.Equal(t, 1, env.vacancies(t, proj.ID))
}

func TestIntegration_NoResumeAndDuplicateApply(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	proj := env.postProject(t, prof.ID, 1)

	// a student without a résumé on file cannot apply
	bare, err := env.userSvc.Register(ctx, user.RegisterRequest{
		Name: "Caio Mendes", Email: "caio@usp.br", Role: user.RoleStudent,
	})
	require.NoError(t, err)
	_, err = env.applicationSvc.Apply(ctx, bare.ID, proj.ID, "motivation")
	require.ErrorIs(t, err, application.ErrNoResume)

	ana := env.registerStudent(t, "Ana Souza")
	_, err = env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation")
	require.NoError(t, err)
	_, err = env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation again")
	require.ErrorIs(t, err, application.ErrAlreadyApplied)
}

func TestIntegration_MarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	ana := env.registerStudent(t, "Ana Souza")
	proj := env.postProject(t, prof.ID, 1)

	_, err := env.applicationSvc.Apply(ctx, ana.ID, proj.ID, "motivation")
	require.NoError(t, err)

	badge, err := env.notificationSvc.Badge(ctx, prof.ID, user.RoleProfessor)
	require.NoError(t, err)
	require.True(t, badge.Unread)

	env.notificationSvc.MarkRead(ctx, prof.ID, user.RoleProfessor)
	badge, err = env.notificationSvc.Badge(ctx, prof.ID, user.RoleProfessor)
	require.NoError(t, err)
	require.False(t, badge.Unread)

	env.notificationSvc.MarkRead(ctx, prof.ID, user.RoleProfessor)
	badge, err = env.notificationSvc.Badge(ctx, prof.ID, user.RoleProfessor)
	require.NoError(t, err)
	require.False(t, badge.Unread)
}

func TestIntegration_SearchFindsPostedProjects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	prof := env.registerProfessor(t, "Dr Carla Lima")
	env.postProject(t, prof.ID, 1)

	results, err := env.projectSvc.Search(ctx, "llvm", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = env.projectSvc.Search(ctx, "astrophysics", 0)
	require.NoError(t, err)
	require.Empty(t, results)
}
