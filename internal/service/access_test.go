package service

import (
	"context"
	"testing"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccessGuard_Check(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()
	workspaceID := uuid.New()

	workspace := &domain.Workspace{ID: workspaceID, Name: "Lab Fund", OwnerID: ownerID}

	t.Run("owner", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)

		guard := NewAccessGuard(repo)
		ws, role, err := guard.Check(ctx, workspaceID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, role)
		assert.Equal(t, workspace, ws)
	})

	t.Run("member", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		repo.On("GetMember", ctx, workspaceID, memberID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: memberID}, nil)

		guard := NewAccessGuard(repo)
		_, role, err := guard.Check(ctx, workspaceID, memberID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleMember, role)
	})

	t.Run("outsider", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		repo.On("GetMember", ctx, workspaceID, strangerID).Return(nil, nil)

		guard := NewAccessGuard(repo)
		_, role, err := guard.Check(ctx, workspaceID, strangerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleNone, role)
	})

	t.Run("workspace not found", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(nil, nil)

		guard := NewAccessGuard(repo)
		_, _, err := guard.Check(ctx, workspaceID, ownerID)

		assert.True(t, domain.Is(err, domain.KindNotFound))
	})
}

func TestAccessGuard_RequireMember(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	strangerID := uuid.New()
	workspaceID := uuid.New()

	workspace := &domain.Workspace{ID: workspaceID, OwnerID: ownerID}

	t.Run("outsider is forbidden", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		repo.On("GetMember", ctx, workspaceID, strangerID).Return(nil, nil)

		guard := NewAccessGuard(repo)
		_, _, err := guard.RequireMember(ctx, workspaceID, strangerID)

		assert.True(t, domain.Is(err, domain.KindForbidden))
	})

	t.Run("owner passes", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)

		guard := NewAccessGuard(repo)
		_, role, err := guard.RequireMember(ctx, workspaceID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, role)
	})
}

func TestAccessGuard_RequireOwner(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()
	workspaceID := uuid.New()

	workspace := &domain.Workspace{ID: workspaceID, OwnerID: ownerID}

	t.Run("member gets owner-required", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		repo.On("GetMember", ctx, workspaceID, memberID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: memberID}, nil)

		guard := NewAccessGuard(repo)
		_, err := guard.RequireOwner(ctx, workspaceID, memberID)

		assert.True(t, domain.Is(err, domain.KindOwnerRequired))
	})

	t.Run("outsider gets forbidden", func(t *testing.T) {
		repo := new(MockWorkspaceRepository)
		repo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		repo.On("GetMember", ctx, workspaceID, strangerID).Return(nil, nil)

		guard := NewAccessGuard(repo)
		_, err := guard.RequireOwner(ctx, workspaceID, strangerID)

		assert.True(t, domain.Is(err, domain.KindForbidden))
	})
}
