package auth

import (
	"testing"
	"time"
)

func testManager(expiry, refreshExpiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-key",
		Expiry:        expiry,
		RefreshExpiry: refreshExpiry,
		Issuer:        "internship-simulator-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)

	token, jti, err := manager.GenerateAccessToken(42, "student@example.com", "student", 3)
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}
	if jti == "" {
		t.Error("access token should carry a JTI")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "student@example.com" {
		t.Errorf("unexpected email: %q", claims.Email)
	}
	if claims.Role != "student" {
		t.Errorf("unexpected role: %q", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected token type access, got %q", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("expected token version 3, got %d", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims JTI %q does not match returned JTI %q", claims.ID, jti)
	}
}

func TestGenerateRefreshTokenType(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)

	token, _, err := manager.GenerateRefreshToken(1, "student@example.com", "student", 0)
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate refresh token: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("expected token type refresh, got %q", claims.TokenType)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)
	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour})

	token, _, err := manager.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)

	if _, err := manager.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage input should not validate")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	manager := testManager(-time.Minute, 24*time.Hour)

	token, _, err := manager.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
	if !manager.IsTokenExpired(token) {
		t.Error("IsTokenExpired should report true for an expired token")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)

	refreshToken, _, err := manager.GenerateRefreshToken(7, "a@b.com", "student", 2)
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	accessToken, jti, err := manager.RefreshAccessToken(refreshToken, 2)
	if err != nil {
		t.Fatalf("Failed to refresh: %v", err)
	}
	if jti == "" {
		t.Error("refreshed access token should carry a JTI")
	}

	claims, err := manager.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("Failed to validate refreshed token: %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("refreshed token should be an access token, got %q", claims.TokenType)
	}
	if claims.UserID != 7 {
		t.Errorf("expected user ID 7, got %d", claims.UserID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)

	accessToken, _, err := manager.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, _, err := manager.RefreshAccessToken(accessToken, 0); err == nil {
		t.Error("access tokens must not be usable for refresh")
	}
}

func TestGetTokenExpiryAndJTI(t *testing.T) {
	manager := testManager(time.Hour, 24*time.Hour)

	token, jti, err := manager.GenerateAccessToken(1, "a@b.com", "student", 0)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	expiry, err := manager.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("Failed to read expiry: %v", err)
	}
	until := time.Until(expiry)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Errorf("expiry should be about an hour away, got %v", until)
	}

	gotJTI, err := manager.GetJTI(token)
	if err != nil {
		t.Fatalf("Failed to read JTI: %v", err)
	}
	if gotJTI != jti {
		t.Errorf("GetJTI returned %q, expected %q", gotJTI, jti)
	}
}
