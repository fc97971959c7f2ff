package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"github.com/sahilchouksey/internship-simulator/utils/cache"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidTaskTransition is returned when a task status change would
// move backward
var ErrInvalidTaskTransition = errors.New("invalid task status transition")

// EvaluationService handles submissions, their evaluation, progress
// tracking, and certificate issuance.
type EvaluationService struct {
	db      *gorm.DB
	gateway *supervisor.Gateway
	cache   *cache.RedisCache // optional; nil disables the issuance lock

	evaluatorEndpoint string
	internalAPIKey    string
	httpClient        *http.Client
}

// NewEvaluationService creates a new evaluation service. The cache and
// evaluator endpoint are optional.
func NewEvaluationService(db *gorm.DB, gateway *supervisor.Gateway, redisCache *cache.RedisCache, evaluatorEndpoint, internalAPIKey string) *EvaluationService {
	return &EvaluationService{
		db:                db,
		gateway:           gateway,
		cache:             redisCache,
		evaluatorEndpoint: evaluatorEndpoint,
		internalAPIKey:    internalAPIKey,
		httpClient:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit stores a submission and dispatches evaluation in the
// background. A task may be submitted any number of times; the newest
// submission wins for display. The task only advances to submitted when
// that is a forward move, so an evaluated task keeps its status while
// still accepting new attempts.
func (s *EvaluationService) Submit(ctx context.Context, task *model.Task, userID uint, content string, fileURLs []string) (*model.Submission, error) {
	submission := &model.Submission{
		TaskID:      task.ID,
		UserID:      userID,
		Content:     content,
		SubmittedAt: time.Now().UTC(),
	}
	if len(fileURLs) > 0 {
		urlsJSON, err := json.Marshal(fileURLs)
		if err == nil {
			submission.FileURLs = datatypes.JSON(urlsJSON)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		if task.CanTransitionTo(model.TaskStatusSubmitted) {
			return tx.Model(&model.Task{}).
				Where("id = ?", task.ID).
				Update("status", model.TaskStatusSubmitted).
				Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	// Fire-and-forget: the submitting request never waits for the AI
	go func(submissionID uint) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.Evaluate(bgCtx, submissionID); err != nil {
			log.Printf("[Evaluation] Failed to evaluate submission %d: %v", submissionID, err)
		}
	}(submission.ID)

	return submission, nil
}

// remoteEvaluatePayload is the request body sent to the remote evaluator
type remoteEvaluatePayload struct {
	SubmissionID   uint   `json:"submission_id"`
	Content        string `json:"content"`
	TaskTitle      string `json:"task_title"`
	TaskDescription string `json:"task_description"`
	TaskDifficulty string `json:"task_difficulty"`
	Industry       string `json:"industry"`
}

// Evaluate scores a submission. When a remote evaluator endpoint is
// configured it is preferred; any transport failure or non-200 response
// falls back to an in-process feedback call. Evaluation is idempotent:
// last write wins on score and feedback.
func (s *EvaluationService) Evaluate(ctx context.Context, submissionID uint) error {
	var submission model.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		return fmt.Errorf("submission not found: %w", err)
	}

	var task model.Task
	if err := s.db.First(&task, submission.TaskID).Error; err != nil {
		return fmt.Errorf("task not found for submission %d: %w", submissionID, err)
	}

	industryName := "general"
	var internship model.InternshipTrack
	if err := s.db.Preload("Industry").First(&internship, task.InternshipID).Error; err == nil {
		if internship.Industry.Name != "" {
			industryName = internship.Industry.Name
		}
	}

	if s.evaluatorEndpoint != "" {
		// The remote evaluator applies the result via the internal API
		err := s.evaluateRemote(ctx, &submission, &task, industryName)
		if err == nil {
			log.Printf("[Evaluation] Submission %d evaluated remotely", submissionID)
			return nil
		}
		log.Printf("[Evaluation] Remote evaluator failed for submission %d: %v", submissionID, err)
	}

	feedback := s.gateway.GenerateFeedback(ctx, submission.Content, task.Title, task.Description, task.Difficulty, industryName)

	if err := s.ApplyEvaluation(ctx, submission.ID, feedback); err != nil {
		return err
	}

	log.Printf("[Evaluation] Submission %d evaluated locally", submissionID)
	return nil
}

// evaluateRemote posts the submission to the evaluator function app
func (s *EvaluationService) evaluateRemote(ctx context.Context, submission *model.Submission, task *model.Task, industry string) error {
	payload := remoteEvaluatePayload{
		SubmissionID:    submission.ID,
		Content:         submission.Content,
		TaskTitle:       task.Title,
		TaskDescription: task.Description,
		TaskDifficulty:  task.Difficulty,
		Industry:        industry,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := s.evaluatorEndpoint + "/api/evaluate_submission"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.internalAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("evaluator returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// ApplyEvaluation writes feedback onto a submission, advances the task
// to evaluated, and recomputes internship progress.
func (s *EvaluationService) ApplyEvaluation(ctx context.Context, submissionID uint, feedback supervisor.Feedback) error {
	var submission model.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		return fmt.Errorf("submission not found: %w", err)
	}

	var task model.Task
	if err := s.db.First(&task, submission.TaskID).Error; err != nil {
		return fmt.Errorf("task not found: %w", err)
	}

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	now := time.Now().UTC()
	score := feedback.Score

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Submission{}).
			Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"score":        score,
				"feedback":     datatypes.JSON(feedbackJSON),
				"evaluated_at": now,
			}).Error; err != nil {
			return err
		}

		// Statuses only move forward; a re-evaluation of an already
		// evaluated task updates score/feedback without touching status
		if task.CanTransitionTo(model.TaskStatusEvaluated) {
			if err := tx.Model(&model.Task{}).
				Where("id = ?", task.ID).
				Update("status", model.TaskStatusEvaluated).
				Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply evaluation: %w", err)
	}

	if _, err := s.RecomputeProgress(ctx, task.InternshipID); err != nil {
		log.Printf("[Evaluation] Failed to recompute progress for internship %d: %v", task.InternshipID, err)
	}

	return nil
}

// UpdateTaskStatus advances a task's status, enforcing forward-only
// transitions.
func (s *EvaluationService) UpdateTaskStatus(ctx context.Context, taskID uint, newStatus string) error {
	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return fmt.Errorf("task not found: %w", err)
	}

	if !task.CanTransitionTo(newStatus) {
		return ErrInvalidTaskTransition
	}

	return s.db.Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("status", newStatus).
		Error
}

// RecomputeProgress recalculates progress as evaluated/total*100 and,
// on reaching 100, triggers the completion check.
func (s *EvaluationService) RecomputeProgress(ctx context.Context, internshipID uint) (float64, error) {
	var total, evaluated int64

	if err := s.db.Model(&model.Task{}).
		Where("internship_id = ?", internshipID).
		Count(&total).Error; err != nil {
		return 0, err
	}

	if err := s.db.Model(&model.Task{}).
		Where("internship_id = ? AND status = ?", internshipID, model.TaskStatusEvaluated).
		Count(&evaluated).Error; err != nil {
		return 0, err
	}

	progress := 0.0
	if total > 0 {
		progress = float64(evaluated) / float64(total) * 100
	}

	if err := s.db.Model(&model.InternshipTrack{}).
		Where("id = ?", internshipID).
		Update("progress", progress).
		Error; err != nil {
		return 0, err
	}

	if progress >= 100 {
		if err := s.CheckCompletion(ctx, internshipID); err != nil {
			log.Printf("[Evaluation] Completion check failed for internship %d: %v", internshipID, err)
		}
	}

	return progress, nil
}

// CheckCompletion issues a certificate for a fully evaluated internship.
// Issuance is idempotent: a Redis lock serializes concurrent checks and
// the unique index on internship_id catches any race the lock misses.
func (s *EvaluationService) CheckCompletion(ctx context.Context, internshipID uint) error {
	var internship model.InternshipTrack
	if err := s.db.Preload("Industry").First(&internship, internshipID).Error; err != nil {
		return fmt.Errorf("internship not found: %w", err)
	}

	var total, evaluated int64
	if err := s.db.Model(&model.Task{}).
		Where("internship_id = ?", internshipID).
		Count(&total).Error; err != nil {
		return err
	}
	if err := s.db.Model(&model.Task{}).
		Where("internship_id = ? AND status = ?", internshipID, model.TaskStatusEvaluated).
		Count(&evaluated).Error; err != nil {
		return err
	}

	if total == 0 || evaluated < total {
		return nil
	}

	// Serialize concurrent completion checks for the same internship
	if s.cache != nil {
		lockKey := fmt.Sprintf("certificate:lock:%d", internshipID)
		acquired, err := s.cache.SetNX(ctx, lockKey, "1", 30*time.Second)
		if err != nil {
			log.Printf("[Evaluation] Certificate lock error for internship %d: %v", internshipID, err)
		} else if !acquired {
			log.Printf("[Evaluation] Certificate issuance already in progress for internship %d", internshipID)
			return nil
		} else {
			defer s.cache.Delete(ctx, lockKey)
		}
	}

	// Already issued?
	var existing int64
	if err := s.db.Model(&model.Certificate{}).
		Where("internship_id = ?", internshipID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	// Average score across evaluated submissions for this internship
	var avgScore float64
	row := s.db.Model(&model.Submission{}).
		Select("COALESCE(AVG(submissions.score), 0)").
		Joins("JOIN tasks ON tasks.id = submissions.task_id").
		Where("tasks.internship_id = ? AND submissions.score IS NOT NULL", internshipID).
		Row()
	if err := row.Scan(&avgScore); err != nil {
		return fmt.Errorf("failed to compute average score: %w", err)
	}

	userName := "the student"
	var profile model.UserProfile
	if err := s.db.Where("user_id = ?", internship.UserID).First(&profile).Error; err == nil && profile.FullName != "" {
		userName = profile.FullName
	}

	generated := s.gateway.GenerateCertificate(ctx, userName, internship.Title, internship.Industry.Name, int(total), avgScore)

	skillsJSON, err := json.Marshal(generated.SkillsAcquired)
	if err != nil {
		skillsJSON = []byte("[]")
	}

	certificate := model.Certificate{
		InternshipID:   internshipID,
		UserID:         internship.UserID,
		Title:          generated.Title,
		Description:    generated.Description,
		Score:          avgScore,
		SkillsAcquired: datatypes.JSON(skillsJSON),
		IssuedAt:       time.Now().UTC(),
	}

	if err := s.db.Create(&certificate).Error; err != nil {
		// A concurrent check won the race; the unique index makes the
		// duplicate a no-op
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[Evaluation] Certificate already exists for internship %d", internshipID)
			return nil
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.Model(&model.InternshipTrack{}).
		Where("id = ?", internshipID).
		Updates(map[string]interface{}{
			"status":       model.InternshipStatusCompleted,
			"completed_at": now,
		}).Error; err != nil {
		return fmt.Errorf("failed to mark internship completed: %w", err)
	}

	log.Printf("[Evaluation] Issued certificate %d for internship %d", certificate.ID, internshipID)
	return nil
}

// DeleteInternship removes an internship and all dependent rows in one
// transaction: submissions first, then tasks, certificate, and finally
// the internship itself.
func (s *EvaluationService) DeleteInternship(ctx context.Context, internshipID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id IN (SELECT id FROM tasks WHERE internship_id = ?)", internshipID).
			Delete(&model.Submission{}).Error; err != nil {
			return err
		}

		if err := tx.Where("internship_id = ?", internshipID).
			Delete(&model.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("internship_id = ?", internshipID).
			Delete(&model.Certificate{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.InternshipTrack{}, internshipID).Error
	})
}
