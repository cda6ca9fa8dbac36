package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repository"
)

// ApplicationRepository implements repository.ApplicationRepository for SQLite
type ApplicationRepository struct {
	db *DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, student_id, project_id, professor_id, motivation, status,
	viewed_by_student, viewed_by_professor, applied_at`

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.StudentID, app.ProjectID, app.ProfessorID, app.Motivation, string(app.Status),
		app.ViewedByStudent, app.ViewedByProfessor, app.AppliedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func scanApplication(row interface{ Scan(...any) error }) (*application.Application, error) {
	var app application.Application
	var status string
	err := row.Scan(&app.ID, &app.StudentID, &app.ProjectID, &app.ProfessorID, &app.Motivation, &status,
		&app.ViewedByStudent, &app.ViewedByProfessor, &app.AppliedAt)
	if err != nil {
		return nil, err
	}
	app.Status = application.Status(status)
	return &app, nil
}

// Get retrieves an application by ID
func (r *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// FindByStudentAndProject retrieves the application for a (student, project) pair
func (r *ApplicationRepository) FindByStudentAndProject(ctx context.Context, studentID, projectID string) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE student_id = ? AND project_id = ?`,
		studentID, projectID,
	)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// Transition moves an application from one status to another with a
// compare-and-swap on the current status, flipping the requested unread flags
// in the same statement. Returns repository.ErrConflict when the row is no
// longer in the expected status.
func (r *ApplicationRepository) Transition(ctx context.Context, id string, from, to application.Status, unreadForStudent, unreadForProfessor bool) error {
	query := `
		UPDATE applications
		SET status = ?,
			viewed_by_student = CASE WHEN ? THEN 0 ELSE viewed_by_student END,
			viewed_by_professor = CASE WHEN ? THEN 0 ELSE viewed_by_professor END
		WHERE id = ? AND status = ?
	`
	result, err := r.db.ExecContext(ctx, query, string(to), unreadForStudent, unreadForProfessor, id, string(from))
	if err != nil {
		return fmt.Errorf("failed to transition application: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return r.casFailure(ctx, id)
	}
	return nil
}

// DeleteIfStatus removes an application only while it still holds the
// expected status.
func (r *ApplicationRepository) DeleteIfStatus(ctx context.Context, id string, status application.Status) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = ? AND status = ?`, id, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return r.casFailure(ctx, id)
	}
	return nil
}

// casFailure distinguishes a missing row from a row in another status
func (r *ApplicationRepository) casFailure(ctx context.Context, id string) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM applications WHERE id = ?`, id).Scan(&count); err != nil {
		return fmt.Errorf("failed to check application: %w", err)
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

// ListByStudent returns the student's applications, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = ? ORDER BY applied_at DESC`, studentID)
}

// ListByProfessor returns applications targeting the professor's projects, newest first
func (r *ApplicationRepository) ListByProfessor(ctx context.Context, professorID string) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE professor_id = ? ORDER BY applied_at DESC`, professorID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, arg any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// HasUnread reports whether any application carries an unacknowledged status
// change for the user. Students watch for selection outcomes; professors watch
// for new candidatures and accepted offers.
func (r *ApplicationRepository) HasUnread(ctx context.Context, userID string, role user.Role) (bool, error) {
	query, arg := unreadFilter(userID, role)
	if query == "" {
		return false, nil
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM applications WHERE `+query, arg).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check unread applications: %w", err)
	}
	return count > 0, nil
}

// MarkViewed acknowledges every currently-unread application for the user
func (r *ApplicationRepository) MarkViewed(ctx context.Context, userID string, role user.Role) error {
	switch role {
	case user.RoleStudent:
		_, err := r.db.ExecContext(ctx,
			`UPDATE applications SET viewed_by_student = 1
			 WHERE student_id = ? AND status IN ('selected', 'not_selected') AND viewed_by_student = 0`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to mark student notifications viewed: %w", err)
		}
	case user.RoleProfessor:
		_, err := r.db.ExecContext(ctx,
			`UPDATE applications SET viewed_by_professor = 1
			 WHERE professor_id = ? AND status IN ('pending', 'accepted') AND viewed_by_professor = 0`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to mark professor notifications viewed: %w", err)
		}
	}
	return nil
}

func unreadFilter(userID string, role user.Role) (string, any) {
	switch role {
	case user.RoleStudent:
		return `student_id = ? AND status IN ('selected', 'not_selected') AND viewed_by_student = 0`, userID
	case user.RoleProfessor:
		return `professor_id = ? AND status IN ('pending', 'accepted') AND viewed_by_professor = 0`, userID
	default:
		return "", nil
	}
}
