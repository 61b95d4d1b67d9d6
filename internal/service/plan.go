package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
)

// PlanService handles budget plan operations
type PlanService struct {
	planRepo domain.PlanRepository
	guard    *AccessGuard
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo domain.PlanRepository, guard *AccessGuard) *PlanService {
	return &PlanService{planRepo: planRepo, guard: guard}
}

// Create creates a new plan (any member)
func (s *PlanService) Create(ctx context.Context, userID, workspaceID uuid.UUID, input domain.PlanCreate) (*domain.Plan, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	planType, err := normalizePlanType(input.Type)
	if err != nil {
		return nil, err
	}
	if err := validatePlannedAmount(input.PlannedAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:            uuid.New(),
		WorkspaceID:   workspaceID,
		Type:          planType,
		PlannedAmount: input.PlannedAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Duplicate type surfaces as a Conflict from the unique index.
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetByID retrieves a plan (any member)
func (s *PlanService) GetByID(ctx context.Context, userID, workspaceID, planID uuid.UUID) (*domain.Plan, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, workspaceID, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound("plan not found")
	}

	return plan, nil
}

// Update updates a plan's type or planned amount (any member)
func (s *PlanService) Update(ctx context.Context, userID, workspaceID, planID uuid.UUID, input domain.PlanUpdate) (*domain.Plan, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, workspaceID, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound("plan not found")
	}

	if input.Type != nil {
		planType, err := normalizePlanType(*input.Type)
		if err != nil {
			return nil, err
		}
		plan.Type = planType
	}
	if input.PlannedAmount != nil {
		if err := validatePlannedAmount(*input.PlannedAmount); err != nil {
			return nil, err
		}
		plan.PlannedAmount = *input.PlannedAmount
	}

	// The unique index excludes this row by id, so renaming to a type used
	// by another plan fails with a Conflict while a no-op rename succeeds.
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// Delete deletes a plan (owner only)
func (s *PlanService) Delete(ctx context.Context, userID, workspaceID, planID uuid.UUID) error {
	if _, err := s.guard.RequireOwner(ctx, workspaceID, userID); err != nil {
		return err
	}

	plan, err := s.planRepo.GetByID(ctx, workspaceID, planID)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound("plan not found")
	}

	return s.planRepo.Delete(ctx, workspaceID, planID)
}

// ListByWorkspace lists all plans with aggregate figures (any member)
func (s *PlanService) ListByWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.PlanList, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, p := range plans {
		total += p.PlannedAmount
	}

	average := 0.0
	if len(plans) > 0 {
		average = total / float64(len(plans))
	}

	return &domain.PlanList{
		Plans:              plans,
		TotalPlannedAmount: total,
		AverageAmount:      average,
	}, nil
}

// ListPlanTypes returns the distinct plan types of a workspace plus the
// synthetic "other", sorted lexicographically.
func (s *PlanService) ListPlanTypes(ctx context.Context, userID, workspaceID uuid.UUID) ([]string, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	types, err := s.planRepo.ListTypes(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	hasOther := false
	for _, t := range types {
		if t == domain.PlanTypeOther {
			hasOther = true
			break
		}
	}
	if !hasOther {
		types = append(types, domain.PlanTypeOther)
	}

	sort.Strings(types)
	return types, nil
}

func normalizePlanType(raw string) (string, error) {
	planType := strings.TrimSpace(raw)
	if planType == "" {
		return "", domain.ErrFieldValidation("invalid plan type", map[string][]string{
			"type": {"plan type must not be empty"},
		})
	}
	if len(planType) > domain.MaxPlanTypeLength {
		return "", domain.ErrFieldValidation("invalid plan type", map[string][]string{
			"type": {fmt.Sprintf("plan type must be at most %d characters", domain.MaxPlanTypeLength)},
		})
	}
	return planType, nil
}

func validatePlannedAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return domain.ErrFieldValidation("invalid planned amount", map[string][]string{
			"planned_amount": {"planned amount must be a non-negative number"},
		})
	}
	return nil
}
