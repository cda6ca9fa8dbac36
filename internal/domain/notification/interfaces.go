package notification

import (
	"context"

	"github.com/icarus-portal/icarus-api/internal/domain/user"
)

// Repository is the slice of the application store the tracker needs: the
// unread derivation query and the bulk acknowledgment update.
type Repository interface {
	HasUnread(ctx context.Context, userID string, role user.Role) (bool, error)
	MarkViewed(ctx context.Context, userID string, role user.Role) error
}
