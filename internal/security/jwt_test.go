package security_test

import (
	"testing"
	"time"

	"github.com/fundboard/fundboard/internal/security"
	"github.com/google/uuid"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	userID := uuid.New()
	email := "test@example.com"
	workspaces := []uuid.UUID{uuid.New(), uuid.New()}

	accessToken, err := manager.GenerateAccessToken(userID, email, workspaces)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}

	claims, err := manager.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user ID mismatch: got %v, want %v", claims.UserID, userID)
	}

	if claims.Email != email {
		t.Errorf("email mismatch: got %v, want %v", claims.Email, email)
	}

	if len(claims.Workspaces) != len(workspaces) {
		t.Errorf("workspaces count mismatch: got %d, want %d", len(claims.Workspaces), len(workspaces))
	}
}

func TestJWTManager_GenerateTokenPair(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	userID := uuid.New()
	email := "test@example.com"

	pair, err := manager.GenerateTokenPair(userID, email, nil)
	if err != nil {
		t.Fatalf("failed to generate token pair: %v", err)
	}

	if pair.AccessToken == "" {
		t.Error("access token is empty")
	}

	if pair.RefreshToken == "" {
		t.Error("refresh token is empty")
	}

	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in mismatch: got %d", pair.ExpiresIn)
	}

	gotUserID, err := manager.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("failed to validate refresh token: %v", err)
	}
	if gotUserID != userID {
		t.Errorf("user ID mismatch: got %v, want %v", gotUserID, userID)
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	other := security.NewJWTManager("another-secret-key-32-chars!!!!", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "test@example.com", nil)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -1*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "test@example.com", nil)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}
