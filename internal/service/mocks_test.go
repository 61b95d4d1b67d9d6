package service

import (
	"context"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/ocr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.WorkspaceWithRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WorkspaceWithRole), args.Error(1)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.MemberInfo, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.MemberInfo), args.Error(1)
}

// MockPlanRepository mocks the PlanRepository interface
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Plan, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockPlanRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Plan, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListTypes(ctx context.Context, workspaceID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlanRepository) TypeExists(ctx context.Context, workspaceID uuid.UUID, planType string) (bool, error) {
	args := m.Called(ctx, workspaceID, planType)
	return args.Bool(0), args.Error(1)
}

// MockExpenseRepository mocks the ExpenseRepository interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Expense, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) List(ctx context.Context, workspaceID uuid.UUID, filter domain.ExpenseFilter) ([]domain.Expense, int, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseRepository) ListAll(ctx context.Context, workspaceID uuid.UUID) ([]domain.Expense, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) TotalAmount(ctx context.Context, workspaceID uuid.UUID) (float64, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockExpenseRepository) TotalsByPlanType(ctx context.Context, workspaceID uuid.UUID) ([]domain.PlanTypeTotal, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.PlanTypeTotal), args.Error(1)
}

// MockOCRProvider mocks the ocr.Provider interface
type MockOCRProvider struct {
	mock.Mock
}

func (m *MockOCRProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockOCRProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockOCRProvider) ParseReceipt(ctx context.Context, image []byte, mimeType string) (*ocr.Receipt, error) {
	args := m.Called(ctx, image, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ocr.Receipt), args.Error(1)
}
