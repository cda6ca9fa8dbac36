package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/notification"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repository"
)

// Services bundles the domain services the REST edge exposes.
type Services struct {
	Users         *user.Service
	Projects      *project.Service
	Applications  *application.Service
	Notifications *notification.Service
	Activity      *activity.Service
	Tokens        repository.TokenRepository
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewServer creates the REST router. Signup is the only unauthenticated API
// route; everything else runs behind the identity middleware. Extra
// middlewares (metrics, rate limiting) wrap the whole router.
func NewServer(services Services, resolver IdentityResolver, logger *slog.Logger, middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	srv := &Server{services: services, logger: logger}

	r.Get("/health", srv.handleHealth)
	r.Post("/api/users", srv.handleSignup)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(resolver))

		r.Get("/api/users", srv.handleListUsers)
		r.Get("/api/users/{id}", srv.handleGetUser)
		r.Patch("/api/users/{id}", srv.handleUpdateUser)
		r.Put("/api/users/{id}/resume", srv.handleUploadResume)
		r.Get("/api/users/{id}/resume", srv.handleDownloadResume)

		r.Get("/api/projects", srv.handleListProjects)
		r.Get("/api/projects/search", srv.handleSearchProjects)
		r.Get("/api/projects/mine", srv.handleMyProjects)
		r.Post("/api/projects", srv.handleCreateProject)
		r.Get("/api/projects/{id}", srv.handleGetProject)
		r.Patch("/api/projects/{id}", srv.handleUpdateProject)

		r.Get("/api/applications", srv.handleListApplications)
		r.Post("/api/applications", srv.handleApply)
		r.Get("/api/applications/{id}", srv.handleGetApplication)
		r.Post("/api/applications/{id}/select", srv.handleSelect)
		r.Post("/api/applications/{id}/reject", srv.handleReject)
		r.Post("/api/applications/{id}/response", srv.handleRespond)
		r.Delete("/api/applications/{id}", srv.handleCancel)

		r.Get("/api/notifications", srv.handleBadge)
		r.Post("/api/notifications/read", srv.handleMarkRead)

		r.Get("/api/activity", srv.handleActivityFeed)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && s.logger != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, application.ErrApplicationNotFound),
		errors.Is(err, user.ErrNoResume),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, application.ErrAlreadyApplied),
		errors.Is(err, application.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, application.ErrNoResume):
		return http.StatusUnprocessableEntity
	case errors.Is(err, project.ErrForbidden),
		errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, application.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) identity(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return Identity{}, false
	}
	return id, true
}
