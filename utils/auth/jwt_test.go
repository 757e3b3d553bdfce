package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "classpoint-test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(42, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Error("expected a non-empty jti")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	token, _, err := m.GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	other := NewJWTManager(JWTConfig{
		Secret:        "different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "classpoint-test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        -time.Minute,
		RefreshExpiry: -time.Minute,
		Issuer:        "classpoint-test",
	})

	token, _, err := m.GenerateAccessToken(7, "late@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	m := testManager()

	refresh, _, err := m.GenerateRefreshToken(9, "r@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	access, _, err := m.RefreshAccessToken(refresh)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("refreshed token should be an access token, got %q", claims.TokenType)
	}
	if claims.UserID != 9 {
		t.Errorf("expected user id 9, got %d", claims.UserID)
	}

	// An access token cannot be used as a refresh token.
	accessOnly, _, err := m.GenerateAccessToken(9, "r@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, _, err := m.RefreshAccessToken(accessOnly); err == nil {
		t.Error("refreshing with an access token must fail")
	}
}
