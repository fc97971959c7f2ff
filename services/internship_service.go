package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"gorm.io/gorm"
)

// ErrProfileIncomplete is returned when a user tries to enroll before
// completing their profile
var ErrProfileIncomplete = errors.New("profile must be completed before starting an internship")

// InternshipService sequences the multi-step side effects around
// enrollment. It is the only component with cross-entity behavior at
// enrollment time.
type InternshipService struct {
	db      *gorm.DB
	gateway *supervisor.Gateway
}

// NewInternshipService creates a new internship service
func NewInternshipService(db *gorm.DB, gateway *supervisor.Gateway) *InternshipService {
	return &InternshipService{
		db:      db,
		gateway: gateway,
	}
}

// EnrollRequest carries the enrollment parameters
type EnrollRequest struct {
	UserID     uint
	IndustryID uint
	CompanyID  *uint
	RoleID     *uint
}

// Enroll creates a new internship track for a user and generates its
// week-1 tasks. If task generation returns nothing, a fixed three-task
// starter set is created instead.
func (s *InternshipService) Enroll(ctx context.Context, req EnrollRequest) (*model.InternshipTrack, error) {
	// Profile gate
	var user model.User
	if err := s.db.Preload("Profile").First(&user, req.UserID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Profile == nil || !user.Profile.ProfileCompleted {
		return nil, ErrProfileIncomplete
	}

	var industry model.Industry
	if err := s.db.First(&industry, req.IndustryID).Error; err != nil {
		return nil, fmt.Errorf("failed to load industry: %w", err)
	}

	// Resolve company and role. A company-specific role overrides the
	// caller's company choice.
	var company *model.Company
	var role *model.Role

	if req.CompanyID != nil {
		var c model.Company
		if err := s.db.First(&c, *req.CompanyID).Error; err == nil {
			company = &c
		}
	}

	if req.RoleID != nil {
		var r model.Role
		if err := s.db.First(&r, *req.RoleID).Error; err == nil {
			role = &r
			if r.CompanyID != nil && (company == nil || company.ID != *r.CompanyID) {
				var c model.Company
				if err := s.db.First(&c, *r.CompanyID).Error; err == nil {
					company = &c
				} else {
					company = nil
				}
			}
		}
	}

	major := user.Profile.Major
	if major == "" {
		major = "Undeclared"
	}
	interests := user.Profile.CareerInterests
	if interests == "" {
		interests = "General"
	}

	// Generate internship details. Role content takes precedence over
	// generated content.
	generated := s.gateway.GenerateInternship(ctx, industry.Name, major, interests)

	title := fmt.Sprintf("%s Internship", industry.Name)
	description := "Virtual internship experience"

	if role != nil {
		companyName := "Virtual Company"
		if company != nil {
			companyName = company.Name
		}
		title = fmt.Sprintf("%s at %s", role.Name, companyName)
		description = role.Description
	} else {
		if generated.Title != "" {
			title = generated.Title
		}
		if generated.Description != "" {
			description = generated.Description
		}
	}

	internship := &model.InternshipTrack{
		UserID:        req.UserID,
		IndustryID:    req.IndustryID,
		Title:         title,
		Description:   description,
		DurationWeeks: generated.DurationWeeks,
		Status:        model.InternshipStatusActive,
		StartedAt:     time.Now().UTC(),
	}
	if company != nil {
		id := company.ID
		internship.CompanyID = &id
	}
	if role != nil {
		id := role.ID
		internship.RoleID = &id
	}

	if err := s.db.Create(internship).Error; err != nil {
		return nil, fmt.Errorf("failed to create internship: %w", err)
	}

	// Generate week 1 tasks
	log.Printf("[Internship] Generating tasks for internship %d: %s", internship.ID, internship.Title)

	taskList := s.gateway.GenerateTasks(ctx, internship.Title, industry.Name, major, 1)
	log.Printf("[Internship] Generated %d tasks for internship %d", len(taskList), internship.ID)

	if len(taskList) == 0 {
		log.Printf("[Internship] No tasks were generated for internship %d. Using fallback tasks.", internship.ID)
		taskList = starterTasks(industry.Name, role, company)
	}

	for _, t := range taskList {
		task := model.Task{
			InternshipID: internship.ID,
			Title:        t.Title,
			Description:  t.Description,
			Instructions: t.Instructions,
			Difficulty:   t.Difficulty,
			Points:       t.Points,
			Status:       model.TaskStatusPending,
			Week:         1,
		}
		if task.Title == "" {
			task.Title = fmt.Sprintf("Week 1 Task for %s", industry.Name)
		}
		if task.Description == "" {
			task.Description = "Complete this task as part of your virtual internship."
		}
		if task.Instructions == "" {
			task.Instructions = "Follow the instructions carefully and submit your work."
		}
		if task.Difficulty == "" {
			task.Difficulty = "medium"
		}
		if task.Points == 0 {
			task.Points = 100
		}

		if err := s.db.Create(&task).Error; err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		log.Printf("[Internship] Added task: %s", task.Title)
	}

	return internship, nil
}

// starterTasks is the fixed week-1 task set used when generation
// produces nothing
func starterTasks(industryName string, role *model.Role, company *model.Company) []supervisor.GeneratedTask {
	roleName := "Professional"
	if role != nil {
		roleName = role.Name
	}
	companyName := "Company"
	companyRef := "your chosen company"
	if company != nil {
		companyName = company.Name
		companyRef = company.Name
	}

	return []supervisor.GeneratedTask{
		{
			Title:        fmt.Sprintf("Week 1: Introduction to %s", industryName),
			Description:  fmt.Sprintf("Learn about the fundamentals of %s and get familiar with key concepts in this field.", industryName),
			Instructions: "Research the current trends and challenges in this industry. Write a 500-word summary of your findings.",
			Difficulty:   "easy",
			Points:       100,
		},
		{
			Title:        fmt.Sprintf("Week 1: %s Skills Assessment", roleName),
			Description:  "Evaluate your current skills related to this internship and identify areas for development.",
			Instructions: "Create a skills matrix that lists your strengths and areas for improvement. Then develop a learning plan for the duration of the internship.",
			Difficulty:   "medium",
			Points:       120,
		},
		{
			Title:        fmt.Sprintf("Week 1: %s Analysis", companyName),
			Description:  fmt.Sprintf("Research and analyze the structure, products, and market position of %s.", companyRef),
			Instructions: "Prepare a brief report on the company's business model, competitive advantages, and challenges in the current market.",
			Difficulty:   "medium",
			Points:       150,
		},
	}
}

// GenerateWeeklyTasks creates tasks for a given week of an existing
// internship. Used by the weekly cron job once the prior week is done.
func (s *InternshipService) GenerateWeeklyTasks(ctx context.Context, internship *model.InternshipTrack, week int) (int, error) {
	var industry model.Industry
	if err := s.db.First(&industry, internship.IndustryID).Error; err != nil {
		return 0, fmt.Errorf("failed to load industry: %w", err)
	}

	var profile model.UserProfile
	major := "Undeclared"
	if err := s.db.Where("user_id = ?", internship.UserID).First(&profile).Error; err == nil && profile.Major != "" {
		major = profile.Major
	}

	taskList := s.gateway.GenerateTasks(ctx, internship.Title, industry.Name, major, week)
	if len(taskList) == 0 {
		var role *model.Role
		var company *model.Company
		if internship.RoleID != nil {
			var r model.Role
			if err := s.db.First(&r, *internship.RoleID).Error; err == nil {
				role = &r
			}
		}
		if internship.CompanyID != nil {
			var c model.Company
			if err := s.db.First(&c, *internship.CompanyID).Error; err == nil {
				company = &c
			}
		}
		taskList = starterTasks(industry.Name, role, company)
	}

	created := 0
	for _, t := range taskList {
		task := model.Task{
			InternshipID: internship.ID,
			Title:        t.Title,
			Description:  t.Description,
			Instructions: t.Instructions,
			Difficulty:   t.Difficulty,
			Points:       t.Points,
			Status:       model.TaskStatusPending,
			Week:         week,
		}
		if err := s.db.Create(&task).Error; err != nil {
			return created, fmt.Errorf("failed to create task: %w", err)
		}
		created++
	}

	return created, nil
}
