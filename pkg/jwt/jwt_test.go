package jwt

import (
	"testing"
	"time"

	"surgery-reservation-system/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doctor@hospital.local", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if tokenID == "" {
		t.Fatal("empty token ID")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "doctor@hospital.local" {
		t.Errorf("Email = %s", claims.Email)
	}
	if claims.RoleID != 2 {
		t.Errorf("RoleID = %d, want 2", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %s, want access", claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID mismatch")
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "patient@hospital.local", 3)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("TokenType = %s, want refresh", claims.TokenType)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken(uuid.New(), "x@hospital.local", 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "different-secret", AccessExpiry: time.Minute})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation failure with a different secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})
	token, _, err := svc.GenerateAccessToken(uuid.New(), "x@hospital.local", 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected validation failure for an expired token")
	}
}
