package task

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services"
	"github.com/sahilchouksey/internship-simulator/services/spaces"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/pdfvalidation"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// TaskHandler handles task detail, submission, and resource requests
type TaskHandler struct {
	db          *gorm.DB
	evaluations *services.EvaluationService
	gateway     *supervisor.Gateway
	spaces      *spaces.Client // nil when file storage is not configured
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(db *gorm.DB, evaluations *services.EvaluationService, gateway *supervisor.Gateway, spacesClient *spaces.Client) *TaskHandler {
	return &TaskHandler{
		db:          db,
		evaluations: evaluations,
		gateway:     gateway,
		spaces:      spacesClient,
	}
}

// loadOwnedTask fetches a task and verifies the internship it belongs
// to is owned by the user
func (h *TaskHandler) loadOwnedTask(c *fiber.Ctx, userID uint) (*model.Task, *model.InternshipTrack, error) {
	taskID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, nil, response.BadRequest(c, "Invalid task ID")
	}

	var task model.Task
	if err := h.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, response.NotFound(c, "Task not found")
		}
		return nil, nil, response.InternalServerError(c, "Failed to fetch task")
	}

	var internship model.InternshipTrack
	if err := h.db.First(&internship, task.InternshipID).Error; err != nil {
		return nil, nil, response.InternalServerError(c, "Failed to fetch internship")
	}
	if internship.UserID != userID {
		return nil, nil, response.Forbidden(c, "You do not have access to this task")
	}

	return &task, &internship, nil
}

// Get returns a task with the user's submissions for it
// GET /tasks/:id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	task, _, err := h.loadOwnedTask(c, userID)
	if task == nil {
		return err
	}

	var submissions []model.Submission
	if err := h.db.Where("task_id = ?", task.ID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch submissions")
	}

	return response.Success(c, fiber.Map{
		"task":        task,
		"submissions": submissions,
	})
}

// maxSubmissionFiles caps how many attachments a single submission may carry
const maxSubmissionFiles = 5

// Submit records a submission for a task and queues its evaluation.
// Accepts multipart form data with a "content" field and optional
// "files" attachments.
// POST /tasks/:id/submit
func (h *TaskHandler) Submit(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	task, _, err := h.loadOwnedTask(c, userID)
	if task == nil {
		return err
	}

	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		return response.BadRequest(c, "Submission content is required")
	}

	// Collect and store attachments
	var fileURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["files"]
		if len(files) > maxSubmissionFiles {
			return response.BadRequest(c, fmt.Sprintf("A maximum of %d files may be attached", maxSubmissionFiles))
		}

		for _, fileHeader := range files {
			if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
				result, err := pdfvalidation.ValidatePDFFile(fileHeader, pdfvalidation.SubmissionLimits)
				if err != nil || !result.Valid {
					msg := "Invalid PDF file"
					if result != nil && result.Error != "" {
						msg = result.Error
					}
					return response.BadRequest(c, msg)
				}
			}

			if h.spaces == nil {
				log.Printf("[Task] File storage not configured, skipping upload of %s", fileHeader.Filename)
				continue
			}

			src, err := fileHeader.Open()
			if err != nil {
				return response.BadRequest(c, "Failed to read uploaded file")
			}

			key := spaces.GenerateKey(fmt.Sprintf("submissions/%d", userID), fileHeader.Filename)
			url, err := h.spaces.UploadFile(c.Context(), key, src, spaces.GetContentType(fileHeader.Filename))
			src.Close()
			if err != nil {
				// Uploads are best effort; the text submission still stands
				log.Printf("[Task] Failed to upload %s: %v", fileHeader.Filename, err)
				continue
			}
			fileURLs = append(fileURLs, url)
		}
	}

	submission, err := h.evaluations.Submit(c.Context(), task, userID, content, fileURLs)
	if err != nil {
		return response.InternalServerError(c, "Failed to submit task")
	}

	return response.Created(c, fiber.Map{
		"submission": submission,
		"message":    "Submission received. Feedback will be available shortly.",
	})
}

// Resources returns learning resources for a task
// GET /tasks/:id/resources
func (h *TaskHandler) Resources(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	task, internship, err := h.loadOwnedTask(c, userID)
	if task == nil {
		return err
	}

	var industry model.Industry
	industryName := "general"
	if err := h.db.First(&industry, internship.IndustryID).Error; err == nil {
		industryName = industry.Name
	}

	resources := h.gateway.SuggestResources(c.Context(), task.Title, task.Description, industryName)

	return response.Success(c, fiber.Map{
		"task_id":   task.ID,
		"resources": resources,
	})
}

// GetSubmission returns a single submission with its feedback
// GET /submissions/:id
func (h *TaskHandler) GetSubmission(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

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

	if submission.UserID != userID {
		return response.Forbidden(c, "You do not have access to this submission")
	}

	return response.Success(c, submission)
}
