package internal

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// InternalHandler serves the service-to-service API used by the
// standalone evaluator. All routes are guarded by the internal API key
// middleware; there is no user session on these requests.
type InternalHandler struct {
	db          *gorm.DB
	evaluations *services.EvaluationService
}

// NewInternalHandler creates a new internal handler
func NewInternalHandler(db *gorm.DB, evaluations *services.EvaluationService) *InternalHandler {
	return &InternalHandler{
		db:          db,
		evaluations: evaluations,
	}
}

// GetSubmission returns a submission with its task for evaluation
// GET /internal/submission/:id
func (h *InternalHandler) GetSubmission(c *fiber.Ctx) error {
	submissionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var submission model.Submission
	if err := h.db.First(&submission, submissionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Submission not found")
		}
		return response.InternalServerError(c, "Failed to fetch submission")
	}

	var task model.Task
	if err := h.db.First(&task, submission.TaskID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch task")
	}

	var internship model.InternshipTrack
	industryName := "general"
	if err := h.db.Preload("Industry").First(&internship, task.InternshipID).Error; err == nil {
		if internship.Industry.Name != "" {
			industryName = internship.Industry.Name
		}
	}

	return response.Success(c, fiber.Map{
		"submission": submission,
		"task":       task,
		"industry":   industryName,
	})
}

// UpdateSubmissionRequest carries evaluation results written back by
// the evaluator
type UpdateSubmissionRequest struct {
	Score               float64  `json:"score"`
	FeedbackSummary     string   `json:"feedback_summary"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	NextSteps           []string `json:"next_steps"`
}

// UpdateSubmission applies evaluation feedback to a submission. The
// owning task is marked evaluated and internship progress recomputed.
// POST /internal/submission/:id/update
func (h *InternalHandler) UpdateSubmission(c *fiber.Ctx) error {
	submissionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var req UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	feedback := supervisor.Feedback{
		Score:               req.Score,
		FeedbackSummary:     req.FeedbackSummary,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
		NextSteps:           req.NextSteps,
	}

	if err := h.evaluations.ApplyEvaluation(c.Context(), uint(submissionID), feedback); err != nil {
		return response.InternalServerError(c, "Failed to update submission")
	}

	return response.SuccessWithMessage(c, "Submission updated successfully", fiber.Map{
		"submission_id": submissionID,
	})
}

// UpdateTaskRequest carries a task status change
type UpdateTaskRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateTask moves a task to a new status. Backward moves are rejected.
// POST /internal/task/:id/update
func (h *InternalHandler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	if err := h.evaluations.UpdateTaskStatus(c.Context(), uint(taskID), req.Status); err != nil {
		if errors.Is(err, services.ErrInvalidTaskTransition) {
			return response.Conflict(c, "Task status cannot move backward")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to update task")
	}

	return response.SuccessWithMessage(c, "Task updated successfully", fiber.Map{
		"task_id": taskID,
		"status":  req.Status,
	})
}

// UpdateProgress recomputes an internship's progress from its tasks
// POST /internal/internship/:id/update-progress
func (h *InternalHandler) UpdateProgress(c *fiber.Ctx) error {
	internshipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid internship ID")
	}

	progress, err := h.evaluations.RecomputeProgress(c.Context(), uint(internshipID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Internship not found")
		}
		return response.InternalServerError(c, "Failed to update progress")
	}

	return response.SuccessWithMessage(c, "Progress updated successfully", fiber.Map{
		"internship_id": internshipID,
		"progress":      progress,
	})
}

// CheckCompletion checks whether an internship is complete and issues
// its certificate if so. Best effort, mirrors the evaluator's final
// fire-and-forget call.
// POST /internal/internship/:id/check-completion
func (h *InternalHandler) CheckCompletion(c *fiber.Ctx) error {
	internshipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid internship ID")
	}

	if err := h.evaluations.CheckCompletion(c.Context(), uint(internshipID)); err != nil {
		return response.InternalServerError(c, "Failed to check completion")
	}

	return response.SuccessWithMessage(c, "Completion check finished", fiber.Map{
		"internship_id": internshipID,
	})
}
