package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repoerr"
)

// Service handles project listing operations.
type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title              string
	Area               string
	Theme              string
	Duration           string
	Description        string
	Keywords           []string
	HasScholarship     bool
	ScholarshipDetails string
	Vacancies          int
}

// Create posts a new listing owned by the professor, snapshotting the owner's
// name, faculty and department onto the project.
func (s *Service) Create(ctx context.Context, professorID string, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}
	if req.Vacancies < 0 {
		return nil, ErrInvalidInput
	}

	owner, err := s.users.Get(ctx, professorID)
	if err != nil {
		return nil, err
	}
	if owner.Role != user.RoleProfessor || owner.Professor == nil {
		return nil, ErrForbidden
	}

	proj := &Project{
		ID:                 uuid.NewString(),
		ProfessorID:        owner.ID,
		ProfessorName:      owner.Name,
		Faculty:            owner.Professor.Faculty,
		Department:         owner.Professor.Department,
		Title:              strings.TrimSpace(req.Title),
		Area:               req.Area,
		Theme:              req.Theme,
		Duration:           req.Duration,
		Description:        req.Description,
		Keywords:           req.Keywords,
		HasScholarship:     req.HasScholarship,
		ScholarshipDetails: req.ScholarshipDetails,
		Vacancies:          req.Vacancies,
		PostedVacancies:    req.Vacancies,
		PostedDate:         time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all listings, newest first.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// Search runs a full-text query over titles, areas, themes, keywords and
// descriptions.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Project, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.Search(ctx, query, limit)
}

// UpdateRequest carries partial field edits. Nil fields are left untouched.
// Editing Vacancies also resets PostedVacancies, re-basing the release cap.
type UpdateRequest struct {
	Title              *string
	Area               *string
	Theme              *string
	Duration           *string
	Description        *string
	Keywords           []string
	HasScholarship     *bool
	ScholarshipDetails *string
	Vacancies          *int
}

// Update applies a partial edit by the owning professor. The lifecycle engine
// is the only other writer of the vacancy counter.
func (s *Service) Update(ctx context.Context, professorID, id string, req UpdateRequest) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if proj.ProfessorID != professorID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		proj.Title = strings.TrimSpace(*req.Title)
	}
	if req.Area != nil {
		proj.Area = *req.Area
	}
	if req.Theme != nil {
		proj.Theme = *req.Theme
	}
	if req.Duration != nil {
		proj.Duration = *req.Duration
	}
	if req.Description != nil {
		proj.Description = *req.Description
	}
	if req.Keywords != nil {
		proj.Keywords = req.Keywords
	}
	if req.HasScholarship != nil {
		proj.HasScholarship = *req.HasScholarship
	}
	if req.ScholarshipDetails != nil {
		proj.ScholarshipDetails = *req.ScholarshipDetails
	}
	if req.Vacancies != nil {
		if *req.Vacancies < 0 {
			return nil, ErrInvalidInput
		}
		proj.Vacancies = *req.Vacancies
		proj.PostedVacancies = *req.Vacancies
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

// ListByProfessor returns the professor's own listings.
func (s *Service) ListByProfessor(ctx context.Context, professorID string) ([]Project, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var own []Project
	for _, p := range all {
		if p.ProfessorID == professorID {
			own = append(own, p)
		}
	}
	return own, nil
}
