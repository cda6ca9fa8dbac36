package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icarus-portal/icarus-api/internal/domain/user"
)

// Badge is the per-user unread indicator.
type Badge struct {
	Unread bool `json:"unread"`
}

// Service derives unread badges from the current application set and provides
// the acknowledgment operation. No aggregate is stored; the badge is a pure
// function of the rows.
//
// A student has an unread badge when any of their applications reached
// selected or not_selected without being viewed. A professor has one when any
// application on their projects is pending or accepted without being viewed.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Badge computes the user's current unread indicator.
func (s *Service) Badge(ctx context.Context, userID string, role user.Role) (Badge, error) {
	unread, err := s.repo.HasUnread(ctx, userID, role)
	if err != nil {
		return Badge{}, fmt.Errorf("deriving badge: %w", err)
	}
	return Badge{Unread: unread}, nil
}

// MarkRead acknowledges every currently-unread application for the user.
// Idempotent and best effort: the flags only affect badge cosmetics, so a
// failed write is logged and swallowed rather than surfaced.
func (s *Service) MarkRead(ctx context.Context, userID string, role user.Role) {
	if err := s.repo.MarkViewed(ctx, userID, role); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to mark notifications read", "user_id", userID, "role", role, "error", err)
		}
	}
}
