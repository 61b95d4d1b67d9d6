package service

import (
	"context"
	"testing"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWTManager() *security.JWTManager {
	return security.NewJWTManager("test-secret-key-32-characters!!!", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("EmailExists", ctx, "dr.jones@uni.edu").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		svc := NewAuthService(userRepo, new(MockWorkspaceRepository), newTestJWTManager())
		user, err := svc.Register(ctx, domain.UserCreate{
			Email:    "  Dr.Jones@Uni.EDU  ",
			Password: "s3cret-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "dr.jones@uni.edu", user.Email)
		assert.NotEqual(t, "s3cret-password", user.PasswordHash)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("EmailExists", ctx, "taken@uni.edu").Return(true, nil)

		svc := NewAuthService(userRepo, new(MockWorkspaceRepository), newTestJWTManager())
		_, err := svc.Register(ctx, domain.UserCreate{Email: "taken@uni.edu", Password: "s3cret-password"})

		assert.True(t, domain.Is(err, domain.KindConflict))
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	user := &domain.User{ID: uuid.New(), Email: "dr.jones@uni.edu", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "dr.jones@uni.edu").Return(user, nil)

		wsRepo := new(MockWorkspaceRepository)
		wsRepo.On("ListByUserID", ctx, user.ID).Return([]domain.WorkspaceWithRole{}, nil)

		svc := NewAuthService(userRepo, wsRepo, newTestJWTManager())
		pair, err := svc.Login(ctx, domain.UserLogin{Email: "dr.jones@uni.edu", Password: "correct-password"})

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "dr.jones@uni.edu").Return(user, nil)

		svc := NewAuthService(userRepo, new(MockWorkspaceRepository), newTestJWTManager())
		_, err := svc.Login(ctx, domain.UserLogin{Email: "dr.jones@uni.edu", Password: "wrong"})

		assert.True(t, domain.Is(err, domain.KindUnauthorized))
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "ghost@uni.edu").Return(nil, nil)

		svc := NewAuthService(userRepo, new(MockWorkspaceRepository), newTestJWTManager())
		_, err := svc.Login(ctx, domain.UserLogin{Email: "ghost@uni.edu", Password: "whatever"})

		assert.True(t, domain.Is(err, domain.KindUnauthorized))
	})
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "dr.jones@uni.edu"}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	wsRepo := new(MockWorkspaceRepository)
	wsRepo.On("ListByUserID", ctx, user.ID).
		Return(make([]domain.WorkspaceWithRole, 3), nil)

	svc := NewAuthService(userRepo, wsRepo, newTestJWTManager())
	got, count, err := svc.Profile(ctx, user.ID)

	assert.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, 3, count)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	jwtManager := newTestJWTManager()

	t.Run("success", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Email: "dr.jones@uni.edu"}
		refreshToken, err := jwtManager.GenerateRefreshToken(user.ID)
		assert.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		wsRepo := new(MockWorkspaceRepository)
		wsRepo.On("ListByUserID", ctx, user.ID).Return([]domain.WorkspaceWithRole{}, nil)

		svc := NewAuthService(userRepo, wsRepo, jwtManager)
		pair, err := svc.Refresh(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), new(MockWorkspaceRepository), jwtManager)
		_, err := svc.Refresh(ctx, "not-a-token")

		assert.True(t, domain.Is(err, domain.KindUnauthorized))
	})
}
