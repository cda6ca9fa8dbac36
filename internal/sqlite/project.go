package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, professor_id, professor_name, faculty, department, title, area, theme,
	duration, description, keywords, has_scholarship, scholarship_details,
	vacancies, posted_vacancies, posted_date`

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	keywords, err := encodeKeywords(proj.Keywords)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		proj.ID, proj.ProfessorID, proj.ProfessorName, proj.Faculty, proj.Department,
		proj.Title, proj.Area, proj.Theme, proj.Duration, proj.Description, keywords,
		proj.HasScholarship, proj.ScholarshipDetails,
		proj.Vacancies, proj.PostedVacancies, proj.PostedDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func scanProject(row interface{ Scan(...any) error }) (*project.Project, error) {
	var proj project.Project
	var keywords string
	err := row.Scan(&proj.ID, &proj.ProfessorID, &proj.ProfessorName, &proj.Faculty, &proj.Department,
		&proj.Title, &proj.Area, &proj.Theme, &proj.Duration, &proj.Description, &keywords,
		&proj.HasScholarship, &proj.ScholarshipDetails,
		&proj.Vacancies, &proj.PostedVacancies, &proj.PostedDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &proj.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	return &proj, nil
}

func encodeKeywords(keywords []string) (string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("failed to encode keywords: %w", err)
	}
	return string(data), nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	proj, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns all projects, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY posted_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Update writes the project's editable fields and re-bases both vacancy
// counters. Owner checks happen in the service layer.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	keywords, err := encodeKeywords(proj.Keywords)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET title = ?, area = ?, theme = ?, duration = ?, description = ?, keywords = ?,
			has_scholarship = ?, scholarship_details = ?, vacancies = ?, posted_vacancies = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		proj.Title, proj.Area, proj.Theme, proj.Duration, proj.Description, keywords,
		proj.HasScholarship, proj.ScholarshipDetails, proj.Vacancies, proj.PostedVacancies,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReserveVacancy atomically decrements the vacancy counter, clamping at zero.
func (r *ProjectRepository) ReserveVacancy(ctx context.Context, projectID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET vacancies = MAX(vacancies - 1, 0) WHERE id = ?`, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve vacancy: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReleaseVacancy atomically increments the vacancy counter, capped at the
// originally posted count so repeated decline/cancel cycles cannot inflate it.
func (r *ProjectRepository) ReleaseVacancy(ctx context.Context, projectID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET vacancies = MIN(vacancies + 1, posted_vacancies) WHERE id = ?`, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to release vacancy: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
