package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is a user's authorization level with respect to one workspace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
	RoleNone   Role = "none"
)

// Workspace represents a tenant workspace owning plans and expenses
type Workspace struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceCreate represents workspace creation data
type WorkspaceCreate struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// WorkspaceUpdate represents workspace update data
type WorkspaceUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// WorkspaceWithRole is a workspace annotated with the caller's role and the
// current member count, used for the "list my workspaces" view.
type WorkspaceWithRole struct {
	Workspace
	Role        Role `json:"role"`
	MemberCount int  `json:"member_count"`
}

// WorkspaceMember represents a membership row. The owner is not stored as a
// member; OwnerID on the workspace is authoritative.
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberInfo is one entry of the member listing: the owner first, then
// members in stored order.
type MemberInfo struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// InviteMember represents an invitation by email
type InviteMember struct {
	Email string `json:"email" validate:"required,email"`
}

// WorkspaceRepository defines workspace and membership persistence operations
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]WorkspaceWithRole, error)

	AddMember(ctx context.Context, member *WorkspaceMember) error
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*WorkspaceMember, error)
	RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]MemberInfo, error)
}
