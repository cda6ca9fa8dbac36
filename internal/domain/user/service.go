package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/icarus-portal/icarus-api/internal/repoerr"
)

// Service handles user registration and profile operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterRequest defines user registration inputs.
type RegisterRequest struct {
	NUSP        string
	Name        string
	Email       string
	Role        Role
	Course      string
	IdealPeriod int
	Faculty     string
	Department  string
}

// Register creates a new user with the role-specific payload.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrInvalidInput
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidInput
	}

	u := &User{
		ID:        uuid.NewString(),
		NUSP:      strings.TrimSpace(req.NUSP),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}
	switch req.Role {
	case RoleStudent:
		u.Student = &StudentProfile{Course: req.Course, IdealPeriod: req.IdealPeriod}
	case RoleProfessor:
		u.Professor = &ProfessorProfile{Faculty: req.Faculty, Department: req.Department}
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repoerr.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetByEmail fetches a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// UpdateProfileRequest carries partial profile edits. Nil fields are left
// untouched. Email and role cannot be changed.
type UpdateProfileRequest struct {
	NUSP        *string
	Name        *string
	Course      *string
	IdealPeriod *int
	Faculty     *string
	Department  *string
}

// UpdateProfile applies a partial update to the user's own profile.
func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NUSP != nil {
		u.NUSP = strings.TrimSpace(*req.NUSP)
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		u.Name = strings.TrimSpace(*req.Name)
	}
	if u.Student != nil {
		if req.Course != nil {
			u.Student.Course = *req.Course
		}
		if req.IdealPeriod != nil {
			u.Student.IdealPeriod = *req.IdealPeriod
		}
	}
	if u.Professor != nil {
		if req.Faculty != nil {
			u.Professor.Faculty = *req.Faculty
		}
		if req.Department != nil {
			u.Professor.Department = *req.Department
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

// resume uploads accepted by the portal
var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// UploadResume stores or replaces the student's résumé.
func (s *Service) UploadResume(ctx context.Context, studentID string, resume Resume) (*User, error) {
	if resume.FileName == "" || len(resume.Content) == 0 {
		return nil, ErrInvalidInput
	}
	ext := strings.ToLower(filepath.Ext(resume.FileName))
	if !allowedResumeExtensions[ext] {
		return nil, ErrInvalidInput
	}

	u, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleStudent {
		return nil, ErrInvalidInput
	}

	if err := s.repo.SaveResume(ctx, studentID, &resume); err != nil {
		return nil, fmt.Errorf("saving resume: %w", err)
	}
	u.Student.ResumeFileName = resume.FileName
	return u, nil
}

// GetResume fetches the student's résumé for download.
func (s *Service) GetResume(ctx context.Context, studentID string) (*Resume, error) {
	r, err := s.repo.GetResume(ctx, studentID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrNoResume
		}
		return nil, fmt.Errorf("getting resume: %w", err)
	}
	return r, nil
}
