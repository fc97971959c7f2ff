package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sahilchouksey/internship-simulator/config"
	"github.com/sahilchouksey/internship-simulator/services/openai"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/middleware"
	"github.com/sahilchouksey/internship-simulator/utils/response"
)

// evaluator is a standalone worker that scores submissions off the main
// API's request path. The API posts submissions here; results are
// written back through the API's internal endpoints.
type evaluator struct {
	gateway        *supervisor.Gateway
	apiBaseURL     string
	internalAPIKey string
	httpClient     *http.Client
}

// EvaluateRequest mirrors the payload the main API sends
type EvaluateRequest struct {
	SubmissionID    uint   `json:"submission_id"`
	Content         string `json:"content"`
	TaskTitle       string `json:"task_title"`
	TaskDescription string `json:"task_description"`
	TaskDifficulty  string `json:"task_difficulty"`
	Industry        string `json:"industry"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = env.APP_URL
	}
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:8080"
	}

	chatClient := openai.NewChatClient(openai.Config{
		APIKey:  env.OPENAI_API_KEY,
		BaseURL: env.OPENAI_ENDPOINT,
		Model:   env.OPENAI_MODEL,
	})

	ev := &evaluator{
		gateway:        supervisor.NewGateway(chatClient),
		apiBaseURL:     apiBaseURL,
		internalAPIKey: env.INTERNAL_API_KEY,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}

	app := fiber.New()
	app.Use(recover.New())

	app.Get("/ping", func(c *fiber.Ctx) error {
		return response.Success(c, fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.InternalAPIKey(env.INTERNAL_API_KEY))
	api.Post("/evaluate_submission", ev.handleEvaluate)

	port := os.Getenv("EVALUATOR_PORT")
	if port == "" {
		port = "8081"
	}

	log.Printf("Starting evaluator on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Evaluator failed: %v", err)
	}
}

// handleEvaluate scores a submission and writes the result back to the
// main API. The write-back applies the feedback, advances the task,
// and recomputes internship progress in one call.
func (ev *evaluator) handleEvaluate(c *fiber.Ctx) error {
	var req EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.SubmissionID == 0 {
		return response.BadRequest(c, "submission_id is required")
	}

	// Older callers may omit the submission content; fetch it
	if req.Content == "" {
		if err := ev.fetchSubmission(c, &req); err != nil {
			log.Printf("[Evaluator] Failed to fetch submission %d: %v", req.SubmissionID, err)
			return response.InternalServerError(c, "Failed to fetch submission")
		}
	}

	industry := req.Industry
	if industry == "" {
		industry = "general"
	}

	log.Printf("[Evaluator] Evaluating submission %d", req.SubmissionID)
	feedback := ev.gateway.GenerateFeedback(c.Context(), req.Content, req.TaskTitle, req.TaskDescription, req.TaskDifficulty, industry)

	if err := ev.writeBack(req.SubmissionID, feedback); err != nil {
		log.Printf("[Evaluator] Failed to write back submission %d: %v", req.SubmissionID, err)
		return response.InternalServerError(c, "Failed to record evaluation")
	}

	log.Printf("[Evaluator] Submission %d scored %.1f", req.SubmissionID, feedback.Score)
	return response.Success(c, fiber.Map{
		"submission_id": req.SubmissionID,
		"score":         feedback.Score,
	})
}

// fetchSubmission pulls the submission and task details from the main API
func (ev *evaluator) fetchSubmission(c *fiber.Ctx, req *EvaluateRequest) error {
	url := fmt.Sprintf("%s/api/v1/internal/submission/%d", ev.apiBaseURL, req.SubmissionID)

	httpReq, err := http.NewRequestWithContext(c.Context(), http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("X-API-Key", ev.internalAPIKey)

	resp, err := ev.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data struct {
			Submission struct {
				Content string `json:"content"`
			} `json:"submission"`
			Task struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Difficulty  string `json:"difficulty"`
			} `json:"task"`
			Industry string `json:"industry"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}

	req.Content = payload.Data.Submission.Content
	if req.TaskTitle == "" {
		req.TaskTitle = payload.Data.Task.Title
	}
	if req.TaskDescription == "" {
		req.TaskDescription = payload.Data.Task.Description
	}
	if req.TaskDifficulty == "" {
		req.TaskDifficulty = payload.Data.Task.Difficulty
	}
	if req.Industry == "" {
		req.Industry = payload.Data.Industry
	}

	return nil
}

// writeBack posts the evaluation result to the main API
func (ev *evaluator) writeBack(submissionID uint, feedback supervisor.Feedback) error {
	url := ev.apiBaseURL + "/api/v1/internal/submission/" + strconv.FormatUint(uint64(submissionID), 10) + "/update"

	body, err := json.Marshal(feedback)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", ev.internalAPIKey)

	resp, err := ev.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
