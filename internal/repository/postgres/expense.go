package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExpenseRepository handles expense data access
type ExpenseRepository struct {
	db *DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create creates a new expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, workspace_id, plan_type, amount, note, date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		expense.ID,
		expense.WorkspaceID,
		expense.PlanType,
		expense.Amount,
		expense.Note,
		expense.Date,
		expense.CreatedBy,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by ID within a workspace
func (r *ExpenseRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Expense, error) {
	query := `
		SELECT id, workspace_id, plan_type, amount, note, date, created_by, created_at, updated_at
		FROM expenses
		WHERE workspace_id = $1 AND id = $2
	`

	var expense domain.Expense
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, id).Scan(
		&expense.ID,
		&expense.WorkspaceID,
		&expense.PlanType,
		&expense.Amount,
		&expense.Note,
		&expense.Date,
		&expense.CreatedBy,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

// Update updates an expense
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET plan_type = $3, amount = $4, note = $5, date = $6, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
	`

	_, err := r.db.Pool.Exec(ctx, query,
		expense.WorkspaceID,
		expense.ID,
		expense.PlanType,
		expense.Amount,
		expense.Note,
		expense.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete deletes an expense
func (r *ExpenseRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE workspace_id = $1 AND id = $2`

	_, err := r.db.Pool.Exec(ctx, query, workspaceID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// List retrieves one page of expenses matching the filter, ordered by date
// descending then created_at descending, plus the total matching count.
func (r *ExpenseRepository) List(ctx context.Context, workspaceID uuid.UUID, filter domain.ExpenseFilter) ([]domain.Expense, int, error) {
	conditions := []string{"workspace_id = $1"}
	args := []any{workspaceID}

	if filter.PlanType != nil {
		args = append(args, *filter.PlanType)
		conditions = append(conditions, fmt.Sprintf("plan_type = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE ` + where
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	listQuery := fmt.Sprintf(`
		SELECT id, workspace_id, plan_type, amount, note, date, created_by, created_at, updated_at
		FROM expenses
		WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// ListAll retrieves the full unfiltered expense set of a workspace
func (r *ExpenseRepository) ListAll(ctx context.Context, workspaceID uuid.UUID) ([]domain.Expense, error) {
	query := `
		SELECT id, workspace_id, plan_type, amount, note, date, created_by, created_at, updated_at
		FROM expenses
		WHERE workspace_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// TotalAmount returns the sum of all expense amounts in a workspace
func (r *ExpenseRepository) TotalAmount(ctx context.Context, workspaceID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE workspace_id = $1`

	var total float64
	if err := r.db.Pool.QueryRow(ctx, query, workspaceID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return total, nil
}

// TotalsByPlanType returns the spent sum and count per plan type, descending by sum
func (r *ExpenseRepository) TotalsByPlanType(ctx context.Context, workspaceID uuid.UUID) ([]domain.PlanTypeTotal, error) {
	query := `
		SELECT plan_type, SUM(amount), COUNT(*)
		FROM expenses
		WHERE workspace_id = $1
		GROUP BY plan_type
		ORDER BY SUM(amount) DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses: %w", err)
	}
	defer rows.Close()

	var totals []domain.PlanTypeTotal
	for rows.Next() {
		var t domain.PlanTypeTotal
		if err := rows.Scan(&t.PlanType, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func scanExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense

		if err := rows.Scan(
			&expense.ID,
			&expense.WorkspaceID,
			&expense.PlanType,
			&expense.Amount,
			&expense.Note,
			&expense.Date,
			&expense.CreatedBy,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}
