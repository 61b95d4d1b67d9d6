package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WorkspaceRepository handles workspace and membership data access
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		workspace.ID,
		workspace.Name,
		workspace.Description,
		workspace.OwnerID,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict("you already have a workspace with this name")
		}
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	var workspace domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.Description,
		&workspace.OwnerID,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// Update updates a workspace's name and description
func (r *WorkspaceRepository) Update(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query, workspace.ID, workspace.Name, workspace.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict("you already have a workspace with this name")
		}
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	return nil
}

// Delete deletes a workspace. Plans, expenses and membership rows cascade.
func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workspaces WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// ListByUserID retrieves all workspaces a user owns or is a member of,
// newest first, annotated with the user's role and the member count.
func (r *WorkspaceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.WorkspaceWithRole, error) {
	query := `
		SELECT w.id, w.name, w.description, w.owner_id, w.created_at, w.updated_at,
		       CASE WHEN w.owner_id = $1 THEN 'owner' ELSE 'member' END AS role,
		       (SELECT COUNT(*) FROM workspace_members m WHERE m.workspace_id = w.id) AS member_count
		FROM workspaces w
		WHERE w.owner_id = $1
		   OR EXISTS (SELECT 1 FROM workspace_members m WHERE m.workspace_id = w.id AND m.user_id = $1)
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.WorkspaceWithRole
	for rows.Next() {
		var ws domain.WorkspaceWithRole
		var role string

		if err := rows.Scan(
			&ws.ID,
			&ws.Name,
			&ws.Description,
			&ws.OwnerID,
			&ws.CreatedAt,
			&ws.UpdatedAt,
			&role,
			&ws.MemberCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}

		ws.Role = domain.Role(role)
		workspaces = append(workspaces, ws)
	}

	return workspaces, rows.Err()
}

// AddMember adds a member to a workspace
func (r *WorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		member.WorkspaceID,
		member.UserID,
		member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict("user is already a member of this workspace")
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GetMember retrieves a workspace membership row
func (r *WorkspaceRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, user_id, created_at
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2
	`

	var member domain.WorkspaceMember
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, userID).Scan(
		&member.WorkspaceID,
		&member.UserID,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// RemoveMember removes a member from a workspace
func (r *WorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	query := `DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`

	_, err := r.db.Pool.Exec(ctx, query, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// ListMembers retrieves member entries in stored order. The joined-at of a
// member is their account creation time; the owner row is composed by the
// service layer.
func (r *WorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.MemberInfo, error) {
	query := `
		SELECT u.id, u.email, u.created_at
		FROM workspace_members m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY m.created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.MemberInfo
	for rows.Next() {
		var info domain.MemberInfo

		if err := rows.Scan(&info.UserID, &info.Email, &info.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}

		info.Role = domain.RoleMember
		members = append(members, info)
	}

	return members, rows.Err()
}
