package supervisor

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	supervisorsvc "github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// SupervisorHandler handles student questions to the AI supervisor
type SupervisorHandler struct {
	db      *gorm.DB
	gateway *supervisorsvc.Gateway
}

// NewSupervisorHandler creates a new supervisor handler
func NewSupervisorHandler(db *gorm.DB, gateway *supervisorsvc.Gateway) *SupervisorHandler {
	return &SupervisorHandler{
		db:      db,
		gateway: gateway,
	}
}

// AskRequest represents a question to the supervisor. Internship and
// task are optional context hints.
type AskRequest struct {
	Question     string `json:"question" validate:"required"`
	InternshipID *uint  `json:"internship_id"`
	TaskID       *uint  `json:"task_id"`
}

// Ask answers a free-form question, grounding the answer in the
// student's profile and current internship context when available
// POST /supervisor/ask
func (h *SupervisorHandler) Ask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Question) == "" {
		return response.BadRequest(c, "Question is required")
	}

	askCtx := supervisorsvc.AskContext{}

	var profile model.UserProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		askCtx.FullName = profile.FullName
		askCtx.Major = profile.Major
	}

	if req.InternshipID != nil {
		var internship model.InternshipTrack
		if err := h.db.First(&internship, *req.InternshipID).Error; err == nil && internship.UserID == userID {
			askCtx.InternshipTitle = internship.Title

			var industry model.Industry
			if err := h.db.First(&industry, internship.IndustryID).Error; err == nil {
				askCtx.IndustryName = industry.Name
			}

			if req.TaskID != nil {
				var task model.Task
				if err := h.db.First(&task, *req.TaskID).Error; err == nil && task.InternshipID == internship.ID {
					askCtx.TaskTitle = task.Title
					askCtx.TaskDescription = task.Description
					askCtx.TaskInstruction = task.Instructions
				}
			}
		}
	}

	answer := h.gateway.AskQuestion(c.Context(), req.Question, askCtx)

	return response.Success(c, fiber.Map{
		"question": req.Question,
		"answer":   answer,
	})
}
