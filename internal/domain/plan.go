package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanTypeOther is the catch-all category for expenses without a plan.
const PlanTypeOther = "other"

// MaxPlanTypeLength bounds the trimmed category key.
const MaxPlanTypeLength = 100

// Plan represents a budget category with a planned target amount,
// unique per workspace by type.
type Plan struct {
	ID            uuid.UUID `json:"id"`
	WorkspaceID   uuid.UUID `json:"workspace_id"`
	Type          string    `json:"type"`
	PlannedAmount float64   `json:"planned_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PlanCreate represents plan creation data
type PlanCreate struct {
	Type          string  `json:"type" validate:"required"`
	PlannedAmount float64 `json:"planned_amount"`
}

// PlanUpdate represents plan update data
type PlanUpdate struct {
	Type          *string  `json:"type,omitempty"`
	PlannedAmount *float64 `json:"planned_amount,omitempty"`
}

// PlanList is the workspace plan listing with aggregate figures.
type PlanList struct {
	Plans              []Plan  `json:"plans"`
	TotalPlannedAmount float64 `json:"total_planned_amount"`
	AverageAmount      float64 `json:"average_amount"`
}

// PlanRepository defines plan persistence operations
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	// ListByWorkspace returns all plans ordered by type, then created_at descending.
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Plan, error)
	ListTypes(ctx context.Context, workspaceID uuid.UUID) ([]string, error)
	TypeExists(ctx context.Context, workspaceID uuid.UUID, planType string) (bool, error)
}
