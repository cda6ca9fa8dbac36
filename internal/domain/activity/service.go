package activity

import (
	"context"
	"log/slog"
	"time"
)

const defaultFeedLimit = 50

// Service handles the activity feed. Writes are best effort: the feed is
// informational and never blocks a lifecycle operation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log records an event. Persistence failures are logged and swallowed.
func (s *Service) Log(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to record activity", "type", entry.Type, "project_id", entry.ProjectID, "error", err)
		}
	}
	return nil
}

// Feed returns the professor's recent activity, newest first.
func (s *Service) Feed(ctx context.Context, professorID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}
	return s.repo.ListByProfessor(ctx, professorID, limit)
}
