package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
)

// WorkspaceService handles workspace and membership operations
type WorkspaceService struct {
	workspaceRepo domain.WorkspaceRepository
	userRepo      domain.UserRepository
	guard         *AccessGuard
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceRepo domain.WorkspaceRepository,
	userRepo domain.UserRepository,
	guard *AccessGuard,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		guard:         guard,
	}
}

// Create creates a new workspace with the caller as owner
func (s *WorkspaceService) Create(ctx context.Context, userID uuid.UUID, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	now := time.Now().UTC()
	workspace := &domain.Workspace{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if workspace.Name == "" {
		return nil, domain.ErrValidation("workspace name must not be empty")
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

// GetByID retrieves a workspace, requiring at least membership
func (s *WorkspaceService) GetByID(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, domain.Role, error) {
	workspace, role, err := s.guard.RequireMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, domain.RoleNone, err
	}
	return workspace, role, nil
}

// ListByUser retrieves all workspaces the user owns or belongs to
func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WorkspaceWithRole, error) {
	workspaces, err := s.workspaceRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Update updates a workspace's name or description (owner only)
func (s *WorkspaceService) Update(ctx context.Context, userID, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	workspace, err := s.guard.RequireOwner(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrValidation("workspace name must not be empty")
		}
		workspace.Name = name
	}
	if input.Description != nil {
		workspace.Description = *input.Description
	}

	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, err
	}

	return s.workspaceRepo.GetByID(ctx, workspaceID)
}

// Delete deletes a workspace (owner only), cascading plans, expenses and
// membership rows.
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID uuid.UUID) error {
	if _, err := s.guard.RequireOwner(ctx, workspaceID, userID); err != nil {
		return err
	}

	return s.workspaceRepo.Delete(ctx, workspaceID)
}

// Invite adds the user behind targetEmail as a member (owner only)
func (s *WorkspaceService) Invite(ctx context.Context, userID, workspaceID uuid.UUID, targetEmail string) (*domain.MemberInfo, error) {
	workspace, err := s.guard.RequireOwner(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByEmail(ctx, targetEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return nil, domain.ErrNotFound("no user registered with this email")
	}

	if target.ID == workspace.OwnerID {
		return nil, domain.ErrInvalidOperation("you cannot invite yourself to your own workspace")
	}

	existing, err := s.workspaceRepo.GetMember(ctx, workspaceID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("user is already a member of this workspace")
	}

	member := &domain.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      target.ID,
		CreatedAt:   time.Now().UTC(),
	}

	// Primary-key conflict covers the race with a concurrent invite.
	if err := s.workspaceRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return &domain.MemberInfo{
		UserID:   target.ID,
		Email:    target.Email,
		Role:     domain.RoleMember,
		JoinedAt: target.CreatedAt,
	}, nil
}

// RemoveMember removes a member (owner only). The owner cannot remove
// themself; deleting the workspace is the only self-exit for an owner.
func (s *WorkspaceService) RemoveMember(ctx context.Context, userID, workspaceID, targetUserID uuid.UUID) error {
	if _, err := s.guard.RequireOwner(ctx, workspaceID, userID); err != nil {
		return err
	}

	if targetUserID == userID {
		return domain.ErrInvalidOperation("the owner cannot be removed; delete the workspace instead")
	}

	member, err := s.workspaceRepo.GetMember(ctx, workspaceID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return domain.ErrNotFound("user is not a member of this workspace")
	}

	return s.workspaceRepo.RemoveMember(ctx, workspaceID, targetUserID)
}

// ListMembers lists the owner first (joined at workspace creation), then
// members in stored order (joined at their account creation, as no separate
// join timestamp is exposed).
func (s *WorkspaceService) ListMembers(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.MemberInfo, error) {
	workspace, _, err := s.guard.RequireMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, workspace.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	members, err := s.workspaceRepo.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MemberInfo, 0, len(members)+1)
	if owner != nil {
		result = append(result, domain.MemberInfo{
			UserID:   owner.ID,
			Email:    owner.Email,
			Role:     domain.RoleOwner,
			JoinedAt: workspace.CreatedAt,
		})
	}

	return append(result, members...), nil
}
