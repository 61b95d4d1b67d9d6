package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// ExpenseListDefaultLimit is the page size when the caller gives none.
	ExpenseListDefaultLimit = 50
	// ExpenseListMaxLimit caps the page size.
	ExpenseListMaxLimit = 100
	// MaxExpenseNoteLength bounds the free-text note.
	MaxExpenseNoteLength = 500
)

// Expense represents a dated monetary record against a plan category.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	PlanType    string    `json:"plan_type"`
	Amount      float64   `json:"amount"`
	Note        string    `json:"note,omitempty"`
	Date        time.Time `json:"date"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseCreate represents expense creation data
type ExpenseCreate struct {
	PlanType string     `json:"plan_type"`
	Amount   float64    `json:"amount" validate:"required"`
	Note     string     `json:"note" validate:"max=500"`
	Date     *time.Time `json:"date,omitempty"`
}

// ExpenseUpdate represents expense update data
type ExpenseUpdate struct {
	PlanType *string    `json:"plan_type,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Note     *string    `json:"note,omitempty" validate:"omitempty,max=500"`
	Date     *time.Time `json:"date,omitempty"`
}

// ExpenseFilter restricts an expense listing. The date window is inclusive
// on both ends.
type ExpenseFilter struct {
	PlanType  *string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// ExpensePage is one page of a filtered listing.
type ExpensePage struct {
	Expenses []Expense `json:"expenses"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	HasMore  bool      `json:"has_more"`
}

// PlanTypeTotal is the spent sum and record count for one category.
type PlanTypeTotal struct {
	PlanType string  `json:"plan_type"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// ExpenseSummary carries the ledger aggregates.
type ExpenseSummary struct {
	TotalAmount float64         `json:"total_amount"`
	ByPlanType  []PlanTypeTotal `json:"by_plan_type"`
}

// ExpenseRepository defines expense persistence operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Expense, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	// List returns one page ordered by date descending, then created_at
	// descending, plus the total matching count.
	List(ctx context.Context, workspaceID uuid.UUID, filter ExpenseFilter) ([]Expense, int, error)
	// ListAll returns the full unfiltered expense set of a workspace.
	ListAll(ctx context.Context, workspaceID uuid.UUID) ([]Expense, error)
	TotalAmount(ctx context.Context, workspaceID uuid.UUID) (float64, error)
	// TotalsByPlanType groups amounts by plan type, descending by sum.
	TotalsByPlanType(ctx context.Context, workspaceID uuid.UUID) ([]PlanTypeTotal, error)
}
