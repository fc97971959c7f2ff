package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services/openai"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"gorm.io/gorm"
)

// integrationDB connects to the database configured via environment
// variables. Requires RUN_INTEGRATION_TESTS=true and a running Postgres.
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		t.Fatal("Failed to get GORM DB instance")
	}
	return db
}

// offlineEvaluationService builds an evaluation service whose AI gateway
// points at nothing, so every evaluation takes the fallback path
func offlineEvaluationService(db *gorm.DB) *EvaluationService {
	client := openai.NewChatClient(openai.Config{BaseURL: "http://127.0.0.1:1"})
	gateway := supervisor.NewGateway(client)
	return NewEvaluationService(db, gateway, nil, "", "")
}

// seedInternship creates a user, industry, internship, and tasks for a test
func seedInternship(t *testing.T, db *gorm.DB, taskCount int) (*model.User, *model.InternshipTrack, []model.Task) {
	t.Helper()

	suffix := time.Now().UnixNano()

	user := model.User{
		Username:     fmt.Sprintf("it_user_%d", suffix),
		Email:        fmt.Sprintf("it_user_%d@example.com", suffix),
		PasswordHash: "x",
		Profile:      &model.UserProfile{FullName: "Test Student", Major: "CS", ProfileCompleted: true},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	industry := model.Industry{Name: fmt.Sprintf("Test Industry %d", suffix)}
	if err := db.Create(&industry).Error; err != nil {
		t.Fatalf("Failed to create industry: %v", err)
	}

	internship := model.InternshipTrack{
		UserID:        user.ID,
		IndustryID:    industry.ID,
		Title:         "Integration Test Internship",
		DurationWeeks: 8,
		Status:        model.InternshipStatusActive,
		StartedAt:     time.Now().UTC(),
	}
	if err := db.Create(&internship).Error; err != nil {
		t.Fatalf("Failed to create internship: %v", err)
	}

	tasks := make([]model.Task, 0, taskCount)
	for i := 0; i < taskCount; i++ {
		task := model.Task{
			InternshipID: internship.ID,
			Title:        fmt.Sprintf("Task %d", i+1),
			Status:       model.TaskStatusPending,
			Week:         1,
		}
		if err := db.Create(&task).Error; err != nil {
			t.Fatalf("Failed to create task: %v", err)
		}
		tasks = append(tasks, task)
	}

	t.Cleanup(func() {
		svc := offlineEvaluationService(db)
		svc.DeleteInternship(context.Background(), internship.ID)
		db.Unscoped().Where("industry_id = ?", industry.ID).Delete(&model.Role{})
		db.Unscoped().Delete(&industry)
		db.Unscoped().Where("user_id = ?", user.ID).Delete(&model.UserProfile{})
		db.Unscoped().Delete(&user)
	})

	return &user, &internship, tasks
}

func TestResubmissionAlwaysAccepted(t *testing.T) {
	db := integrationDB(t)
	svc := offlineEvaluationService(db)
	ctx := context.Background()

	user, _, tasks := seedInternship(t, db, 1)
	task := tasks[0]

	first, err := svc.Submit(ctx, &task, user.ID, "first attempt", nil)
	if err != nil {
		t.Fatalf("First submission should succeed: %v", err)
	}

	// Reload; task is now submitted (or evaluated once the async
	// evaluation lands)
	if err := db.First(&task, task.ID).Error; err != nil {
		t.Fatalf("Failed to reload task: %v", err)
	}
	if task.Status == model.TaskStatusPending {
		t.Fatalf("Task should have left pending after submission, got %q", task.Status)
	}

	// A task can be submitted again after evaluation; the new attempt
	// must not move the status backward
	if err := db.Model(&model.Task{}).Where("id = ?", task.ID).
		Update("status", model.TaskStatusEvaluated).Error; err != nil {
		t.Fatalf("Failed to mark task evaluated: %v", err)
	}
	task.Status = model.TaskStatusEvaluated

	second, err := svc.Submit(ctx, &task, user.ID, "second attempt", nil)
	if err != nil {
		t.Fatalf("Resubmission should succeed: %v", err)
	}
	if second.ID == first.ID {
		t.Error("resubmission should create a new submission row")
	}

	var count int64
	db.Model(&model.Submission{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 submissions for the task, got %d", count)
	}

	if err := db.First(&task, task.ID).Error; err != nil {
		t.Fatalf("Failed to reload task: %v", err)
	}
	if task.Status != model.TaskStatusEvaluated {
		t.Errorf("resubmission moved an evaluated task back to %q", task.Status)
	}
}

func TestDuplicateCertificateTranslatesToSentinel(t *testing.T) {
	db := integrationDB(t)

	user, internship, _ := seedInternship(t, db, 1)

	certificate := model.Certificate{
		InternshipID: internship.ID,
		UserID:       user.ID,
		Title:        "First Certificate",
		IssuedAt:     time.Now().UTC(),
	}
	if err := db.Create(&certificate).Error; err != nil {
		t.Fatalf("Failed to create certificate: %v", err)
	}

	// The completion check relies on the unique index surfacing as
	// gorm.ErrDuplicatedKey
	duplicate := model.Certificate{
		InternshipID: internship.ID,
		UserID:       user.ID,
		Title:        "Second Certificate",
		IssuedAt:     time.Now().UTC(),
	}
	err := db.Create(&duplicate).Error
	if err == nil {
		t.Fatal("second certificate for the same internship should be rejected")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestRecomputeProgressAndCompletion(t *testing.T) {
	db := integrationDB(t)
	svc := offlineEvaluationService(db)
	ctx := context.Background()

	_, internship, tasks := seedInternship(t, db, 4)

	// Evaluate half the tasks
	for i := 0; i < 2; i++ {
		if err := db.Model(&tasks[i]).Update("status", model.TaskStatusEvaluated).Error; err != nil {
			t.Fatalf("Failed to mark task evaluated: %v", err)
		}
	}

	progress, err := svc.RecomputeProgress(ctx, internship.ID)
	if err != nil {
		t.Fatalf("RecomputeProgress failed: %v", err)
	}
	if progress != 50 {
		t.Errorf("expected progress 50, got %.1f", progress)
	}

	// Evaluate the rest; completion should issue a certificate and close
	// the internship
	for i := 2; i < 4; i++ {
		if err := db.Model(&tasks[i]).Update("status", model.TaskStatusEvaluated).Error; err != nil {
			t.Fatalf("Failed to mark task evaluated: %v", err)
		}
	}

	progress, err = svc.RecomputeProgress(ctx, internship.ID)
	if err != nil {
		t.Fatalf("RecomputeProgress failed: %v", err)
	}
	if progress != 100 {
		t.Errorf("expected progress 100, got %.1f", progress)
	}

	var reloaded model.InternshipTrack
	if err := db.First(&reloaded, internship.ID).Error; err != nil {
		t.Fatalf("Failed to reload internship: %v", err)
	}
	if reloaded.Status != model.InternshipStatusCompleted {
		t.Errorf("expected internship completed, got %q", reloaded.Status)
	}
	if reloaded.CompletedAt == nil {
		t.Error("completed internship should have a completion timestamp")
	}

	var certCount int64
	db.Model(&model.Certificate{}).Where("internship_id = ?", internship.ID).Count(&certCount)
	if certCount != 1 {
		t.Fatalf("expected exactly one certificate, got %d", certCount)
	}

	// Running the completion check again must not mint a second certificate
	if err := svc.CheckCompletion(ctx, internship.ID); err != nil {
		t.Fatalf("CheckCompletion failed: %v", err)
	}
	db.Model(&model.Certificate{}).Where("internship_id = ?", internship.ID).Count(&certCount)
	if certCount != 1 {
		t.Errorf("completion check is not idempotent: %d certificates", certCount)
	}
}

func TestDeleteInternshipCascades(t *testing.T) {
	db := integrationDB(t)
	svc := offlineEvaluationService(db)
	ctx := context.Background()

	user, internship, tasks := seedInternship(t, db, 2)

	// Attach a submission and a certificate
	submission := model.Submission{
		TaskID:      tasks[0].ID,
		UserID:      user.ID,
		Content:     "work",
		SubmittedAt: time.Now().UTC(),
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("Failed to create submission: %v", err)
	}

	certificate := model.Certificate{
		InternshipID: internship.ID,
		UserID:       user.ID,
		Title:        "Test Certificate",
		IssuedAt:     time.Now().UTC(),
	}
	if err := db.Create(&certificate).Error; err != nil {
		t.Fatalf("Failed to create certificate: %v", err)
	}

	if err := svc.DeleteInternship(ctx, internship.ID); err != nil {
		t.Fatalf("DeleteInternship failed: %v", err)
	}

	var count int64
	db.Model(&model.Submission{}).Where("id = ?", submission.ID).Count(&count)
	if count != 0 {
		t.Error("submission should be deleted with its internship")
	}
	db.Model(&model.Task{}).Where("internship_id = ?", internship.ID).Count(&count)
	if count != 0 {
		t.Error("tasks should be deleted with their internship")
	}
	db.Model(&model.Certificate{}).Where("internship_id = ?", internship.ID).Count(&count)
	if count != 0 {
		t.Error("certificate should be deleted with its internship")
	}
	db.Model(&model.InternshipTrack{}).Where("id = ?", internship.ID).Count(&count)
	if count != 0 {
		t.Error("internship should be deleted")
	}
}
