package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icarus-portal/icarus-api/internal/domain/notification"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/repository/mocks"
)

func TestBadge(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ApplicationRepository{}
	repo.On("HasUnread", ctx, "s1", user.RoleStudent).Return(true, nil)
	repo.On("HasUnread", ctx, "prof1", user.RoleProfessor).Return(false, nil)

	svc := notification.NewService(repo, nil)

	badge, err := svc.Badge(ctx, "s1", user.RoleStudent)
	require.NoError(t, err)
	require.True(t, badge.Unread)

	badge, err = svc.Badge(ctx, "prof1", user.RoleProfessor)
	require.NoError(t, err)
	require.False(t, badge.Unread)
}

func TestBadge_RepositoryError(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ApplicationRepository{}
	repo.On("HasUnread", ctx, "s1", user.RoleStudent).Return(false, errors.New("db closed"))

	svc := notification.NewService(repo, nil)
	_, err := svc.Badge(ctx, "s1", user.RoleStudent)
	require.Error(t, err)
}

func TestMarkRead_SwallowsErrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ApplicationRepository{}
	repo.On("MarkViewed", ctx, "s1", user.RoleStudent).Return(errors.New("db closed"))

	svc := notification.NewService(repo, nil)
	svc.MarkRead(ctx, "s1", user.RoleStudent)
	repo.AssertExpectations(t)
}

func TestMarkRead_Idempotent(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ApplicationRepository{}
	repo.On("MarkViewed", ctx, "s1", user.RoleStudent).Return(nil).Twice()

	svc := notification.NewService(repo, nil)
	svc.MarkRead(ctx, "s1", user.RoleStudent)
	svc.MarkRead(ctx, "s1", user.RoleStudent)
	repo.AssertExpectations(t)
}
