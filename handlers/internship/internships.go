package internship

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// InternshipHandler handles internship lifecycle requests
type InternshipHandler struct {
	db          *gorm.DB
	internships *services.InternshipService
	evaluations *services.EvaluationService
}

// NewInternshipHandler creates a new internship handler
func NewInternshipHandler(db *gorm.DB, internships *services.InternshipService, evaluations *services.EvaluationService) *InternshipHandler {
	return &InternshipHandler{
		db:          db,
		internships: internships,
		evaluations: evaluations,
	}
}

// StartRequest represents an enrollment request
type StartRequest struct {
	IndustryID uint  `json:"industry_id" validate:"required"`
	CompanyID  *uint `json:"company_id"`
	RoleID     *uint `json:"role_id"`
}

// Start enrolls the authenticated user in a new internship
// POST /internships
func (h *InternshipHandler) Start(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req StartRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.IndustryID == 0 {
		return response.BadRequest(c, "industry_id is required")
	}

	var industry model.Industry
	if err := h.db.First(&industry, req.IndustryID).Error; err != nil {
		return response.NotFound(c, "Industry not found")
	}

	internship, err := h.internships.Enroll(c.Context(), services.EnrollRequest{
		UserID:     userID,
		IndustryID: req.IndustryID,
		CompanyID:  req.CompanyID,
		RoleID:     req.RoleID,
	})
	if err != nil {
		if errors.Is(err, services.ErrProfileIncomplete) {
			return response.BadRequest(c, "Please complete your profile before starting an internship")
		}
		return response.InternalServerError(c, "Failed to start internship")
	}

	// Return the internship with its generated tasks
	var created model.InternshipTrack
	if err := h.db.Preload("Tasks").First(&created, internship.ID).Error; err != nil {
		return response.Created(c, internship)
	}

	return response.Created(c, created)
}

// List returns the authenticated user's internships
// GET /internships
func (h *InternshipHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var internships []model.InternshipTrack
	if err := h.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&internships).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch internships")
	}

	return response.Success(c, internships)
}

// Get returns one internship with its tasks and certificate
// GET /internships/:id
func (h *InternshipHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	internshipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid internship ID")
	}

	var internship model.InternshipTrack
	if err := h.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tasks.week ASC, tasks.id ASC")
	}).Preload("Certificate").First(&internship, internshipID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Internship not found")
		}
		return response.InternalServerError(c, "Failed to fetch internship")
	}

	if internship.UserID != userID {
		return response.Forbidden(c, "You do not have access to this internship")
	}

	return response.Success(c, internship)
}

// Delete removes an internship and everything attached to it
// DELETE /internships/:id
func (h *InternshipHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	internshipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid internship ID")
	}

	var internship model.InternshipTrack
	if err := h.db.First(&internship, internshipID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Internship not found")
		}
		return response.InternalServerError(c, "Failed to fetch internship")
	}

	if internship.UserID != userID {
		return response.Forbidden(c, "You do not have access to this internship")
	}

	if err := h.evaluations.DeleteInternship(c.Context(), internship.ID); err != nil {
		return response.InternalServerError(c, "Failed to delete internship")
	}

	return response.SuccessWithMessage(c, "Internship deleted successfully", fiber.Map{
		"internship_id": internship.ID,
	})
}
