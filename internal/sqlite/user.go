package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repository"
)

// UserRepository implements repository.UserRepository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with its role-specific payload
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, nusp, name, email, role, course, ideal_period, faculty, department, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var course, faculty, department sql.NullString
	var idealPeriod sql.NullInt64
	if u.Student != nil {
		course = sql.NullString{String: u.Student.Course, Valid: true}
		idealPeriod = sql.NullInt64{Int64: int64(u.Student.IdealPeriod), Valid: true}
	}
	if u.Professor != nil {
		faculty = sql.NullString{String: u.Professor.Faculty, Valid: true}
		department = sql.NullString{String: u.Professor.Department, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.NUSP, u.Name, u.Email, string(u.Role),
		course, idealPeriod, faculty, department, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

const userColumns = `id, nusp, name, email, role, course, ideal_period, faculty, department, resume_file_name, created_at`

func scanUser(row interface{ Scan(...any) error }) (*user.User, error) {
	var u user.User
	var role string
	var course, faculty, department, resumeFileName sql.NullString
	var idealPeriod sql.NullInt64

	err := row.Scan(&u.ID, &u.NUSP, &u.Name, &u.Email, &role,
		&course, &idealPeriod, &faculty, &department, &resumeFileName, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = user.Role(role)
	switch u.Role {
	case user.RoleStudent:
		u.Student = &user.StudentProfile{
			Course:         course.String,
			IdealPeriod:    int(idealPeriod.Int64),
			ResumeFileName: resumeFileName.String,
		}
	case user.RoleProfessor:
		u.Professor = &user.ProfessorProfile{
			Faculty:    faculty.String,
			Department: department.String,
		}
	}
	return &u, nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update writes profile fields. Email and role are immutable.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET nusp = ?, name = ?, course = ?, ideal_period = ?, faculty = ?, department = ?
		WHERE id = ?
	`

	var course, faculty, department sql.NullString
	var idealPeriod sql.NullInt64
	if u.Student != nil {
		course = sql.NullString{String: u.Student.Course, Valid: true}
		idealPeriod = sql.NullInt64{Int64: int64(u.Student.IdealPeriod), Valid: true}
	}
	if u.Professor != nil {
		faculty = sql.NullString{String: u.Professor.Faculty, Valid: true}
		department = sql.NullString{String: u.Professor.Department, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, u.NUSP, u.Name, course, idealPeriod, faculty, department, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SaveResume stores or replaces the student's résumé
func (r *UserRepository) SaveResume(ctx context.Context, studentID string, resume *user.Resume) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET resume_file_name = ?, resume_content = ? WHERE id = ? AND role = 'student'`,
		resume.FileName, resume.Content, studentID,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetResume fetches the student's résumé
func (r *UserRepository) GetResume(ctx context.Context, studentID string) (*user.Resume, error) {
	var resume user.Resume
	var fileName sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT resume_file_name, resume_content FROM users WHERE id = ?`, studentID,
	).Scan(&fileName, &resume.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if !fileName.Valid || len(resume.Content) == 0 {
		return nil, repository.ErrNotFound
	}
	resume.FileName = fileName.String
	return &resume, nil
}

// HasResume reports whether the student has a résumé on file
func (r *UserRepository) HasResume(ctx context.Context, studentID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE id = ? AND resume_content IS NOT NULL`, studentID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check resume: %w", err)
	}
	return count > 0, nil
}
