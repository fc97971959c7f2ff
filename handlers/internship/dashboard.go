package internship

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
)

// Dashboard returns the student's home view: active internships, pending
// work, recent certificates, and headline stats
// GET /dashboard
func (h *InternshipHandler) Dashboard(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var active []model.InternshipTrack
	if err := h.db.Preload("Industry").
		Where("user_id = ? AND status = ?", userID, model.InternshipStatusActive).
		Order("started_at DESC").
		Find(&active).Error; err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	// Tasks still needing attention across active internships
	var pendingTasks []model.Task
	if err := h.db.
		Joins("JOIN internship_tracks ON internship_tracks.id = tasks.internship_id").
		Where("internship_tracks.user_id = ? AND internship_tracks.status = ?", userID, model.InternshipStatusActive).
		Where("tasks.status IN ?", []string{model.TaskStatusPending, model.TaskStatusInProgress}).
		Order("tasks.week ASC, tasks.id ASC").
		Find(&pendingTasks).Error; err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	var certificates []model.Certificate
	if err := h.db.Where("user_id = ?", userID).
		Order("issued_at DESC").
		Limit(5).
		Find(&certificates).Error; err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	var completedCount, submissionCount int64
	h.db.Model(&model.InternshipTrack{}).
		Where("user_id = ? AND status = ?", userID, model.InternshipStatusCompleted).
		Count(&completedCount)
	h.db.Model(&model.Submission{}).
		Where("user_id = ?", userID).
		Count(&submissionCount)

	return response.Success(c, fiber.Map{
		"active_internships": active,
		"pending_tasks":      pendingTasks,
		"certificates":       certificates,
		"stats": fiber.Map{
			"completed_internships": completedCount,
			"total_submissions":     submissionCount,
		},
	})
}
