package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repoerr"
)

// Service is the lifecycle engine: the sole authority over application status
// transitions and their side effects on the project vacancy counter. All
// callers route through it; nothing else mutates status or vacancies.
//
// Status changes are compare-and-swap writes and vacancy changes are atomic
// counter updates in the store, so concurrent actors cannot double-count a
// seat. A transition is never partially applied silently: if the vacancy write
// fails after the status write landed, the operation reports failure and the
// caller is expected to re-fetch.
type Service struct {
	repo       Repository
	projects   ProjectStore
	students   StudentDirectory
	activities ActivityLog
	logger     *slog.Logger
}

// NewService creates the lifecycle engine.
func NewService(repo Repository, projects ProjectStore, students StudentDirectory, activities ActivityLog, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		projects:   projects,
		students:   students,
		activities: activities,
		logger:     logger,
	}
}

// Apply creates a pending application by the student for the project. A résumé
// must be on file. The project may already be full; applications queue and a
// seat is only reserved on selection.
func (s *Service) Apply(ctx context.Context, studentID, projectID, motivation string) (*Application, error) {
	if strings.TrimSpace(motivation) == "" {
		return nil, ErrInvalidInput
	}

	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting student: %w", err)
	}
	if student.Role != user.RoleStudent {
		return nil, ErrForbidden
	}

	hasResume, err := s.students.HasResume(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("checking resume: %w", err)
	}
	if !hasResume {
		return nil, ErrNoResume
	}

	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	if _, err := s.repo.FindByStudentAndProject(ctx, studentID, projectID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, repoerr.ErrNotFound) {
		return nil, fmt.Errorf("checking existing application: %w", err)
	}

	app := &Application{
		ID:                uuid.NewString(),
		StudentID:         studentID,
		ProjectID:         proj.ID,
		ProfessorID:       proj.ProfessorID,
		Motivation:        strings.TrimSpace(motivation),
		Status:            StatusPending,
		ViewedByStudent:   true,
		ViewedByProfessor: false,
		AppliedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, repoerr.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("creating application: %w", err)
	}

	s.record(ctx, app, studentID, activity.TypeApplied, fmt.Sprintf("%s applied to %q", student.Name, proj.Title))
	return app, nil
}

// Select moves a pending application to selected, reserving one seat. The
// vacancy counter clamps at zero in the store.
func (s *Service) Select(ctx context.Context, professorID, applicationID string) (*Application, error) {
	app, err := s.ownedByProfessor(ctx, professorID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, app, StatusPending, StatusSelected, true, false); err != nil {
		return nil, err
	}
	if err := s.projects.ReserveVacancy(ctx, app.ProjectID); err != nil {
		return nil, fmt.Errorf("status updated but seat reservation failed: %w", err)
	}

	s.record(ctx, app, professorID, activity.TypeSelected, "candidate selected")
	return app, nil
}

// Reject moves a pending application to not_selected. No vacancy change.
func (s *Service) Reject(ctx context.Context, professorID, applicationID string) (*Application, error) {
	app, err := s.ownedByProfessor(ctx, professorID, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, app, StatusPending, StatusNotSelected, true, false); err != nil {
		return nil, err
	}

	s.record(ctx, app, professorID, activity.TypeRejected, "candidate not selected")
	return app, nil
}

// Respond records the student's answer to a selection offer. Accepting keeps
// the reserved seat; declining releases it back to the project, capped at the
// originally posted count.
func (s *Service) Respond(ctx context.Context, studentID, applicationID string, accept bool) (*Application, error) {
	app, err := s.ownedByStudent(ctx, studentID, applicationID)
	if err != nil {
		return nil, err
	}

	if accept {
		if err := s.transition(ctx, app, StatusSelected, StatusAccepted, false, true); err != nil {
			return nil, err
		}
		s.record(ctx, app, studentID, activity.TypeAccepted, "offer accepted")
		return app, nil
	}

	if err := s.transition(ctx, app, StatusSelected, StatusDeclined, false, true); err != nil {
		return nil, err
	}
	if err := s.projects.ReleaseVacancy(ctx, app.ProjectID); err != nil {
		return nil, fmt.Errorf("status updated but seat release failed: %w", err)
	}

	s.record(ctx, app, studentID, activity.TypeDeclined, "offer declined")
	return app, nil
}

// Cancel removes the student's own application. Cancelling while selected
// releases the reserved seat; cancelling while pending does not touch the
// counter, since no seat was ever reserved.
func (s *Service) Cancel(ctx context.Context, studentID, applicationID string) error {
	app, err := s.ownedByStudent(ctx, studentID, applicationID)
	if err != nil {
		return err
	}

	switch app.Status {
	case StatusPending:
		if err := s.repo.DeleteIfStatus(ctx, applicationID, StatusPending); err != nil {
			return s.mapConflict(err)
		}
	case StatusSelected:
		if err := s.repo.DeleteIfStatus(ctx, applicationID, StatusSelected); err != nil {
			return s.mapConflict(err)
		}
		if err := s.projects.ReleaseVacancy(ctx, app.ProjectID); err != nil {
			return fmt.Errorf("application removed but seat release failed: %w", err)
		}
	default:
		return ErrInvalidTransition
	}

	s.record(ctx, app, studentID, activity.TypeCancelled, "application cancelled")
	return nil
}

// Get fetches an application visible to the actor (owning student or the
// professor owning the target project).
func (s *Service) Get(ctx context.Context, actorID, id string) (*Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	if app.StudentID != actorID && app.ProfessorID != actorID {
		return nil, ErrForbidden
	}
	return app, nil
}

// ListByStudent returns the student's own applications.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByProfessor returns applications targeting the professor's projects.
func (s *Service) ListByProfessor(ctx context.Context, professorID string) ([]Application, error) {
	return s.repo.ListByProfessor(ctx, professorID)
}

func (s *Service) ownedByProfessor(ctx context.Context, professorID, applicationID string) (*Application, error) {
	app, err := s.repo.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	if app.ProfessorID != professorID {
		return nil, ErrForbidden
	}
	return app, nil
}

func (s *Service) ownedByStudent(ctx context.Context, studentID, applicationID string) (*Application, error) {
	app, err := s.repo.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	if app.StudentID != studentID {
		return nil, ErrForbidden
	}
	return app, nil
}

// transition runs the CAS status write and, on success, updates the in-memory
// copy so callers can return the post-transition row without a re-read.
func (s *Service) transition(ctx context.Context, app *Application, from, to Status, unreadForStudent, unreadForProfessor bool) error {
	if app.Status != from {
		return ErrInvalidTransition
	}
	if err := s.repo.Transition(ctx, app.ID, from, to, unreadForStudent, unreadForProfessor); err != nil {
		return s.mapConflict(err)
	}
	app.Status = to
	if unreadForStudent {
		app.ViewedByStudent = false
	}
	if unreadForProfessor {
		app.ViewedByProfessor = false
	}
	return nil
}

func (s *Service) mapConflict(err error) error {
	if errors.Is(err, repoerr.ErrConflict) {
		return ErrInvalidTransition
	}
	if errors.Is(err, repoerr.ErrNotFound) {
		return ErrApplicationNotFound
	}
	return err
}

func (s *Service) record(ctx context.Context, app *Application, actorID string, eventType activity.EventType, summary string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Log(ctx, &activity.Entry{
		ProjectID:     app.ProjectID,
		ApplicationID: app.ID,
		ProfessorID:   app.ProfessorID,
		ActorID:       actorID,
		Type:          eventType,
		Summary:       summary,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("recording activity", "application_id", app.ID, "type", eventType, "error", err)
	}
}
