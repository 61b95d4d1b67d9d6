package service

import (
	"context"
	"fmt"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
)

// AccessGuard decides what a user may do inside a workspace. It reads the
// workspace's own ownership and membership rows on every call; nothing is
// cached across calls, so membership changes take effect immediately.
type AccessGuard struct {
	workspaceRepo domain.WorkspaceRepository
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(workspaceRepo domain.WorkspaceRepository) *AccessGuard {
	return &AccessGuard{workspaceRepo: workspaceRepo}
}

// Check resolves the workspace and determines the user's role in it.
func (g *AccessGuard) Check(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Workspace, domain.Role, error) {
	workspace, err := g.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, domain.RoleNone, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, domain.RoleNone, domain.ErrNotFound("workspace not found")
	}

	if workspace.OwnerID == userID {
		return workspace, domain.RoleOwner, nil
	}

	member, err := g.workspaceRepo.GetMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, domain.RoleNone, fmt.Errorf("failed to check membership: %w", err)
	}
	if member != nil {
		return workspace, domain.RoleMember, nil
	}

	return workspace, domain.RoleNone, nil
}

// RequireMember resolves the workspace and fails with Forbidden unless the
// user is the owner or a member.
func (g *AccessGuard) RequireMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Workspace, domain.Role, error) {
	workspace, role, err := g.Check(ctx, workspaceID, userID)
	if err != nil {
		return nil, domain.RoleNone, err
	}
	if role == domain.RoleNone {
		return nil, domain.RoleNone, domain.ErrForbidden("you do not have access to this workspace")
	}
	return workspace, role, nil
}

// RequireOwner resolves the workspace and fails unless the user is the
// owner: Forbidden for outsiders, OwnerRequired for members.
func (g *AccessGuard) RequireOwner(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Workspace, error) {
	workspace, role, err := g.Check(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleOwner:
		return workspace, nil
	case domain.RoleMember:
		return nil, domain.ErrOwnerRequired("only the workspace owner can perform this action")
	default:
		return nil, domain.ErrForbidden("you do not have access to this workspace")
	}
}
