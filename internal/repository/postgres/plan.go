package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlanRepository handles budget plan data access
type PlanRepository struct {
	db *DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create creates a new plan. The unique index on (workspace_id, type)
// closes the duplicate-type race between concurrent writers.
func (r *PlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	query := `
		INSERT INTO plans (id, workspace_id, type, planned_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		plan.ID,
		plan.WorkspaceID,
		plan.Type,
		plan.PlannedAmount,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict(fmt.Sprintf("a plan with type %q already exists in this workspace", plan.Type))
		}
		return fmt.Errorf("failed to create plan: %w", err)
	}

	return nil
}

// GetByID retrieves a plan by ID within a workspace
func (r *PlanRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Plan, error) {
	query := `
		SELECT id, workspace_id, type, planned_amount, created_at, updated_at
		FROM plans
		WHERE workspace_id = $1 AND id = $2
	`

	var plan domain.Plan
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&plan.ID,
		&plan.WorkspaceID,
		&plan.Type,
		&plan.PlannedAmount,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return &plan, nil
}

// Update updates a plan's type and planned amount
func (r *PlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	query := `
		UPDATE plans
		SET type = $3, planned_amount = $4, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
	`

	_, err := r.db.Pool.Exec(ctx, query, plan.WorkspaceID, plan.ID, plan.Type, plan.PlannedAmount)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict(fmt.Sprintf("a plan with type %q already exists in this workspace", plan.Type))
		}
		return fmt.Errorf("failed to update plan: %w", err)
	}

	return nil
}

// Delete deletes a plan
func (r *PlanRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query := `DELETE FROM plans WHERE workspace_id = $1 AND id = $2`

	_, err := r.db.Pool.Exec(ctx, query, workspaceID, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	return nil
}

// ListByWorkspace retrieves all plans ordered by type, then created_at descending
func (r *PlanRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Plan, error) {
	query := `
		SELECT id, workspace_id, type, planned_amount, created_at, updated_at
		FROM plans
		WHERE workspace_id = $1
		ORDER BY type ASC, created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var plan domain.Plan

		if err := rows.Scan(
			&plan.ID,
			&plan.WorkspaceID,
			&plan.Type,
			&plan.PlannedAmount,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}

		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// ListTypes retrieves the distinct plan types in a workspace
func (r *PlanRepository) ListTypes(ctx context.Context, workspaceID uuid.UUID) ([]string, error) {
	query := `SELECT DISTINCT type FROM plans WHERE workspace_id = $1`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan plan type: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// TypeExists checks whether a plan with the given type exists in the workspace
func (r *PlanRepository) TypeExists(ctx context.Context, workspaceID uuid.UUID, planType string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM plans WHERE workspace_id = $1 AND type = $2)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, workspaceID, planType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check plan type: %w", err)
	}

	return exists, nil
}
