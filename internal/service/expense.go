package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
)

// ExpenseService handles expense ledger operations
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
	planRepo    domain.PlanRepository
	guard       *AccessGuard
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	planRepo domain.PlanRepository,
	guard *AccessGuard,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		planRepo:    planRepo,
		guard:       guard,
	}
}

// Create creates a new expense attributed to the caller (any member)
func (s *ExpenseService) Create(ctx context.Context, userID, workspaceID uuid.UUID, input domain.ExpenseCreate) (*domain.Expense, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	if err := validateExpenseAmount(input.Amount); err != nil {
		return nil, err
	}
	if len(input.Note) > domain.MaxExpenseNoteLength {
		return nil, domain.ErrFieldValidation("invalid note", map[string][]string{
			"note": {fmt.Sprintf("note must be at most %d characters", domain.MaxExpenseNoteLength)},
		})
	}

	planType := strings.TrimSpace(input.PlanType)
	if planType == "" {
		planType = domain.PlanTypeOther
	}
	if err := s.checkPlanType(ctx, workspaceID, planType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	expense := &domain.Expense{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		PlanType:    planType,
		Amount:      input.Amount,
		Note:        input.Note,
		Date:        date,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetByID retrieves an expense (any member)
func (s *ExpenseService) GetByID(ctx context.Context, userID, workspaceID, expenseID uuid.UUID) (*domain.Expense, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, workspaceID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound("expense not found")
	}

	return expense, nil
}

// Update updates an expense (any member)
func (s *ExpenseService) Update(ctx context.Context, userID, workspaceID, expenseID uuid.UUID, input domain.ExpenseUpdate) (*domain.Expense, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, workspaceID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound("expense not found")
	}

	if input.PlanType != nil {
		planType := strings.TrimSpace(*input.PlanType)
		if planType == "" {
			planType = domain.PlanTypeOther
		}
		if planType != expense.PlanType {
			if err := s.checkPlanType(ctx, workspaceID, planType); err != nil {
				return nil, err
			}
		}
		expense.PlanType = planType
	}
	if input.Amount != nil {
		if err := validateExpenseAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}
	if input.Note != nil {
		if len(*input.Note) > domain.MaxExpenseNoteLength {
			return nil, domain.ErrFieldValidation("invalid note", map[string][]string{
				"note": {fmt.Sprintf("note must be at most %d characters", domain.MaxExpenseNoteLength)},
			})
		}
		expense.Note = *input.Note
	}
	if input.Date != nil {
		expense.Date = input.Date.UTC()
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// Delete deletes an expense. Only the creator or the workspace owner may
// delete; other members get Forbidden.
func (s *ExpenseService) Delete(ctx context.Context, userID, workspaceID, expenseID uuid.UUID) error {
	_, role, err := s.guard.RequireMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}

	expense, err := s.expenseRepo.GetByID(ctx, workspaceID, expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound("expense not found")
	}

	if expense.CreatedBy != userID && role != domain.RoleOwner {
		return domain.ErrForbidden("only the creator or the workspace owner can delete this expense")
	}

	return s.expenseRepo.Delete(ctx, workspaceID, expenseID)
}

// List retrieves one page of expenses matching the filter (any member).
// The limit is clamped to [1,100] with a default of 50; offset is clamped
// to be non-negative.
func (s *ExpenseService) List(ctx context.Context, userID, workspaceID uuid.UUID, filter domain.ExpenseFilter) (*domain.ExpensePage, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.ExpenseListDefaultLimit
	}
	if filter.Limit > domain.ExpenseListMaxLimit {
		filter.Limit = domain.ExpenseListMaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	expenses, total, err := s.expenseRepo.List(ctx, workspaceID, filter)
	if err != nil {
		return nil, err
	}

	return &domain.ExpensePage{
		Expenses: expenses,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
		HasMore:  filter.Offset+filter.Limit < total,
	}, nil
}

// Summary returns the ledger aggregates of a workspace (any member)
func (s *ExpenseService) Summary(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.ExpenseSummary, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.TotalAmount(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	byType, err := s.expenseRepo.TotalsByPlanType(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	return &domain.ExpenseSummary{
		TotalAmount: total,
		ByPlanType:  byType,
	}, nil
}

// checkPlanType requires non-"other" plan types to reference an existing
// plan in the workspace at write time.
func (s *ExpenseService) checkPlanType(ctx context.Context, workspaceID uuid.UUID, planType string) error {
	if planType == domain.PlanTypeOther {
		return nil
	}

	exists, err := s.planRepo.TypeExists(ctx, workspaceID, planType)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrFieldValidation("invalid plan type", map[string][]string{
			"plan_type": {fmt.Sprintf("plan type %q does not exist in this workspace", planType)},
		})
	}

	return nil
}

func validateExpenseAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domain.ErrFieldValidation("invalid amount", map[string][]string{
			"amount": {"amount must be a positive number"},
		})
	}
	return nil
}
