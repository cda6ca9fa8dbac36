package transport

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/metrics"
)

type signupRequest struct {
	NUSP        string    `json:"nusp"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        user.Role `json:"role"`
	Course      string    `json:"course,omitempty"`
	IdealPeriod int       `json:"ideal_period,omitempty"`
	Faculty     string    `json:"faculty,omitempty"`
	Department  string    `json:"department,omitempty"`
}

type signupResponse struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.services.Users.Register(r.Context(), user.RegisterRequest{
		NUSP:        req.NUSP,
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Course:      req.Course,
		IdealPeriod: req.IdealPeriod,
		Faculty:     req.Faculty,
		Department:  req.Department,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	token, err := s.services.Tokens.Issue(r.Context(), u.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, signupResponse{User: u, AccessToken: token})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.services.Users.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.services.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

type updateUserRequest struct {
	NUSP        *string `json:"nusp,omitempty"`
	Name        *string `json:"name,omitempty"`
	Course      *string `json:"course,omitempty"`
	IdealPeriod *int    `json:"ideal_period,omitempty"`
	Faculty     *string `json:"faculty,omitempty"`
	Department  *string `json:"department,omitempty"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	targetID := chi.URLParam(r, "id")
	if targetID != id.UserID {
		s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "cannot edit another user's profile"})
		return
	}

	var req updateUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.services.Users.UpdateProfile(r.Context(), targetID, user.UpdateProfileRequest{
		NUSP:        req.NUSP,
		Name:        req.Name,
		Course:      req.Course,
		IdealPeriod: req.IdealPeriod,
		Faculty:     req.Faculty,
		Department:  req.Department,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

type uploadResumeRequest struct {
	FileName      string `json:"file_name"`
	ContentBase64 string `json:"content_base64"`
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	targetID := chi.URLParam(r, "id")
	if targetID != id.UserID {
		s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "cannot upload another user's resume"})
		return
	}

	var req uploadResumeRequest
	if !s.decode(w, r, &req) {
		return
	}
	content, err := base64.StdEncoding.DecodeString(req.ContentBase64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content_base64 is not valid base64"})
		return
	}

	u, err := s.services.Users.UploadResume(r.Context(), targetID, user.Resume{
		FileName: req.FileName,
		Content:  content,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

// Résumés are visible to their owner and to professors reviewing candidates.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	targetID := chi.URLParam(r, "id")
	if targetID != id.UserID && id.Role != user.RoleProfessor {
		s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "resume not accessible"})
		return
	}

	resume, err := s.services.Users.GetResume(r.Context(), targetID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resume.Content)
}

type createProjectRequest struct {
	Title              string   `json:"title"`
	Area               string   `json:"area"`
	Theme              string   `json:"theme"`
	Duration           string   `json:"duration"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords"`
	HasScholarship     bool     `json:"has_scholarship"`
	ScholarshipDetails string   `json:"scholarship_details"`
	Vacancies          int      `json:"vacancies"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req createProjectRequest
	if !s.decode(w, r, &req) {
		return
	}

	proj, err := s.services.Projects.Create(r.Context(), id.UserID, project.CreateRequest{
		Title:              req.Title,
		Area:               req.Area,
		Theme:              req.Theme,
		Duration:           req.Duration,
		Description:        req.Description,
		Keywords:           req.Keywords,
		HasScholarship:     req.HasScholarship,
		ScholarshipDetails: req.ScholarshipDetails,
		Vacancies:          req.Vacancies,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.services.Projects.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleSearchProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.services.Projects.Search(r.Context(), r.URL.Query().Get("q"), 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleMyProjects(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	projects, err := s.services.Projects.ListByProfessor(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

type updateProjectRequest struct {
	Title              *string  `json:"title,omitempty"`
	Area               *string  `json:"area,omitempty"`
	Theme              *string  `json:"theme,omitempty"`
	Duration           *string  `json:"duration,omitempty"`
	Description        *string  `json:"description,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
	HasScholarship     *bool    `json:"has_scholarship,omitempty"`
	ScholarshipDetails *string  `json:"scholarship_details,omitempty"`
	Vacancies          *int     `json:"vacancies,omitempty"`
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req updateProjectRequest
	if !s.decode(w, r, &req) {
		return
	}

	proj, err := s.services.Projects.Update(r.Context(), id.UserID, chi.URLParam(r, "id"), project.UpdateRequest{
		Title:              req.Title,
		Area:               req.Area,
		Theme:              req.Theme,
		Duration:           req.Duration,
		Description:        req.Description,
		Keywords:           req.Keywords,
		HasScholarship:     req.HasScholarship,
		ScholarshipDetails: req.ScholarshipDetails,
		Vacancies:          req.Vacancies,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

type applyRequest struct {
	ProjectID  string `json:"project_id"`
	Motivation string `json:"motivation"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req applyRequest
	if !s.decode(w, r, &req) {
		return
	}

	app, err := s.services.Applications.Apply(r.Context(), id.UserID, req.ProjectID, req.Motivation)
	metrics.ObserveTransition("apply", err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, app)
}

// handleListApplications scopes the listing to the caller: students see their
// own applications, professors see candidatures on their projects.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var apps []application.Application
	var err error
	switch id.Role {
	case user.RoleProfessor:
		apps, err = s.services.Applications.ListByProfessor(r.Context(), id.UserID)
	default:
		apps, err = s.services.Applications.ListByStudent(r.Context(), id.UserID)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	app, err := s.services.Applications.Get(r.Context(), id.UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	app, err := s.services.Applications.Select(r.Context(), id.UserID, chi.URLParam(r, "id"))
	metrics.ObserveTransition("select", err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	app, err := s.services.Applications.Reject(r.Context(), id.UserID, chi.URLParam(r, "id"))
	metrics.ObserveTransition("reject", err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req respondRequest
	if !s.decode(w, r, &req) {
		return
	}

	app, err := s.services.Applications.Respond(r.Context(), id.UserID, chi.URLParam(r, "id"), req.Accept)
	metrics.ObserveTransition("respond", err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	err := s.services.Applications.Cancel(r.Context(), id.UserID, chi.URLParam(r, "id"))
	metrics.ObserveTransition("cancel", err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	badge, err := s.services.Notifications.Badge(r.Context(), id.UserID, id.Role)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, badge)
}

// handleMarkRead never fails: acknowledgment is best effort and only affects
// badge cosmetics.
func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	s.services.Notifications.MarkRead(r.Context(), id.UserID, id.Role)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivityFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	if id.Role != user.RoleProfessor {
		s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "activity feed is professor-only"})
		return
	}
	entries, err := s.services.Activity.Feed(r.Context(), id.UserID, 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}
