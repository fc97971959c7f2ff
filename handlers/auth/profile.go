package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	FullName        string `json:"full_name"`
	Major           string `json:"major"`
	University      string `json:"university"`
	CareerInterests string `json:"career_interests"`
	GraduationYear  int    `json:"graduation_year"`
	Bio             string `json:"bio"`
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var user model.User
	if err := h.db.Preload("Profile").First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Profile:   user.Profile,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// UpdateProfile updates the authenticated user's profile. The profile
// is marked complete once a full name and major are set; completion
// gates internship enrollment.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var profile model.UserProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return response.InternalServerError(c, "Failed to load profile")
		}
		profile = model.UserProfile{UserID: userID}
	}

	profile.FullName = req.FullName
	profile.Major = req.Major
	profile.University = req.University
	profile.CareerInterests = req.CareerInterests
	profile.GraduationYear = req.GraduationYear
	profile.Bio = req.Bio
	profile.ProfileCompleted = profile.FullName != "" && profile.Major != ""

	if err := h.db.Save(&profile).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated successfully", profile)
}
