package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
)

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse represents a successful token refresh
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The presented refresh token is revoked so it cannot be replayed.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	// Validate the refresh token
	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid or expired refresh token")
	}

	if claims.TokenType != "refresh" {
		return response.Unauthorized(c, "Token is not a refresh token")
	}

	// Check if the token has been revoked
	revoked, err := h.blacklistService.IsTokenRevoked(context.Background(), claims.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify token status")
	}
	if revoked {
		return response.Unauthorized(c, "Refresh token has been revoked")
	}

	// Verify the user still exists and the token version matches
	var user model.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token has been invalidated")
	}

	// Issue a new token pair
	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	// Revoke the old refresh token
	expiresAt, err := h.jwtManager.GetTokenExpiry(req.RefreshToken)
	if err != nil {
		expiresAt = time.Now().Add(7 * 24 * time.Hour)
	}
	if err := h.blacklistService.RevokeToken(context.Background(), claims.ID, user.ID, expiresAt, "token_refresh"); err != nil {
		return response.InternalServerError(c, "Failed to revoke old token")
	}

	return response.Success(c, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    24 * 60 * 60,
	})
}

// Logout revokes the access token used on this request
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	jti, ok := middleware.GetTokenJTI(c)
	if !ok || jti == "" {
		return response.BadRequest(c, "No token to revoke")
	}

	// Determine expiry from the raw token so the blacklist entry can be
	// cleaned up once the token would have expired anyway
	expiresAt := time.Now().Add(24 * time.Hour)
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if exp, err := h.jwtManager.GetTokenExpiry(raw); err == nil {
			expiresAt = exp
		}
	}

	if err := h.blacklistService.RevokeToken(context.Background(), jti, user.ID, expiresAt, "logout"); err != nil {
		return response.InternalServerError(c, "Failed to revoke token")
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
