package service

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPlanFixture(t *testing.T) (context.Context, uuid.UUID, uuid.UUID, *MockWorkspaceRepository) {
	t.Helper()
	ctx := context.Background()
	ownerID := uuid.New()
	workspaceID := uuid.New()

	wsRepo := new(MockWorkspaceRepository)
	wsRepo.On("GetByID", ctx, workspaceID).
		Return(&domain.Workspace{ID: workspaceID, OwnerID: ownerID}, nil)

	return ctx, ownerID, workspaceID, wsRepo
}

func TestPlanService_Create(t *testing.T) {
	t.Run("success trims type", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("Create", ctx, mock.AnythingOfType("*domain.Plan")).Return(nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		plan, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{
			Type:          "  equipment  ",
			PlannedAmount: 1500,
		})

		assert.NoError(t, err)
		assert.Equal(t, "equipment", plan.Type)
		assert.Equal(t, 1500.0, plan.PlannedAmount)
		planRepo.AssertExpectations(t)
	})

	t.Run("blank type", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		svc := NewPlanService(new(MockPlanRepository), NewAccessGuard(wsRepo))
		_, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{Type: "   ", PlannedAmount: 10})

		assert.True(t, domain.Is(err, domain.KindValidation))
	})

	t.Run("type too long", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		svc := NewPlanService(new(MockPlanRepository), NewAccessGuard(wsRepo))
		_, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{
			Type:          strings.Repeat("x", domain.MaxPlanTypeLength+1),
			PlannedAmount: 10,
		})

		assert.True(t, domain.Is(err, domain.KindValidation))
	})

	t.Run("negative amount", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		svc := NewPlanService(new(MockPlanRepository), NewAccessGuard(wsRepo))
		_, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{Type: "travel", PlannedAmount: -1})

		assert.True(t, domain.Is(err, domain.KindValidation))
	})

	t.Run("non-finite amount", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		svc := NewPlanService(new(MockPlanRepository), NewAccessGuard(wsRepo))
		_, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{Type: "travel", PlannedAmount: math.NaN()})

		assert.True(t, domain.Is(err, domain.KindValidation))
	})

	t.Run("zero amount allowed", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("Create", ctx, mock.AnythingOfType("*domain.Plan")).Return(nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		plan, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{Type: "misc", PlannedAmount: 0})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, plan.PlannedAmount)
	})

	t.Run("duplicate type surfaces conflict", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("Create", ctx, mock.AnythingOfType("*domain.Plan")).
			Return(domain.ErrConflict("a plan with this type already exists"))

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		_, err := svc.Create(ctx, ownerID, workspaceID, domain.PlanCreate{Type: "travel", PlannedAmount: 100})

		assert.True(t, domain.Is(err, domain.KindConflict))
	})
}

func TestPlanService_Delete(t *testing.T) {
	t.Run("member gets owner-required", func(t *testing.T) {
		ctx := context.Background()
		ownerID := uuid.New()
		memberID := uuid.New()
		workspaceID := uuid.New()
		planID := uuid.New()

		wsRepo := new(MockWorkspaceRepository)
		wsRepo.On("GetByID", ctx, workspaceID).
			Return(&domain.Workspace{ID: workspaceID, OwnerID: ownerID}, nil)
		wsRepo.On("GetMember", ctx, workspaceID, memberID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: memberID}, nil)

		planRepo := new(MockPlanRepository)
		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		err := svc.Delete(ctx, memberID, workspaceID, planID)

		assert.True(t, domain.Is(err, domain.KindOwnerRequired))
		planRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("missing plan", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)
		planID := uuid.New()

		planRepo := new(MockPlanRepository)
		planRepo.On("GetByID", ctx, workspaceID, planID).Return(nil, nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		err := svc.Delete(ctx, ownerID, workspaceID, planID)

		assert.True(t, domain.Is(err, domain.KindNotFound))
	})
}

func TestPlanService_ListByWorkspace(t *testing.T) {
	t.Run("aggregates", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("ListByWorkspace", ctx, workspaceID).Return([]domain.Plan{
			{Type: "equipment", PlannedAmount: 1000},
			{Type: "travel", PlannedAmount: 500},
		}, nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		list, err := svc.ListByWorkspace(ctx, ownerID, workspaceID)

		assert.NoError(t, err)
		assert.Equal(t, 1500.0, list.TotalPlannedAmount)
		assert.Equal(t, 750.0, list.AverageAmount)
	})

	t.Run("empty workspace has zero average", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("ListByWorkspace", ctx, workspaceID).Return([]domain.Plan{}, nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		list, err := svc.ListByWorkspace(ctx, ownerID, workspaceID)

		assert.NoError(t, err)
		assert.Equal(t, 0.0, list.TotalPlannedAmount)
		assert.Equal(t, 0.0, list.AverageAmount)
	})
}

func TestPlanService_ListPlanTypes(t *testing.T) {
	t.Run("appends other and sorts", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("ListTypes", ctx, workspaceID).Return([]string{"travel", "equipment"}, nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		types, err := svc.ListPlanTypes(ctx, ownerID, workspaceID)

		assert.NoError(t, err)
		assert.Equal(t, []string{"equipment", "other", "travel"}, types)
	})

	t.Run("does not duplicate an existing other", func(t *testing.T) {
		ctx, ownerID, workspaceID, wsRepo := newPlanFixture(t)

		planRepo := new(MockPlanRepository)
		planRepo.On("ListTypes", ctx, workspaceID).Return([]string{"other", "travel"}, nil)

		svc := NewPlanService(planRepo, NewAccessGuard(wsRepo))
		types, err := svc.ListPlanTypes(ctx, ownerID, workspaceID)

		assert.NoError(t, err)
		assert.Equal(t, []string{"other", "travel"}, types)
	})
}
