package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/services/openai"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"gorm.io/gorm"
)

// offlineInternshipService builds an internship service whose AI gateway
// points at nothing, so enrollment runs entirely on fallbacks
func offlineInternshipService(db *gorm.DB) *InternshipService {
	client := openai.NewChatClient(openai.Config{BaseURL: "http://127.0.0.1:1"})
	return NewInternshipService(db, supervisor.NewGateway(client))
}

func TestEnrollRolePrecedence(t *testing.T) {
	db := integrationDB(t)
	svc := offlineInternshipService(db)
	ctx := context.Background()

	suffix := time.Now().UnixNano()

	user := model.User{
		Username:     fmt.Sprintf("enroll_user_%d", suffix),
		Email:        fmt.Sprintf("enroll_user_%d@example.com", suffix),
		PasswordHash: "x",
		Profile:      &model.UserProfile{FullName: "Enroll Tester", Major: "Finance", ProfileCompleted: true},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	industry := model.Industry{Name: fmt.Sprintf("Enroll Industry %d", suffix)}
	if err := db.Create(&industry).Error; err != nil {
		t.Fatalf("Failed to create industry: %v", err)
	}

	companyA := model.Company{IndustryID: industry.ID, Name: fmt.Sprintf("Northwind Capital %d", suffix)}
	companyB := model.Company{IndustryID: industry.ID, Name: fmt.Sprintf("Eastgate Partners %d", suffix)}
	if err := db.Create(&companyA).Error; err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}
	if err := db.Create(&companyB).Error; err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}

	companyAID := companyA.ID
	attachedRole := model.Role{
		IndustryID:  industry.ID,
		CompanyID:   &companyAID,
		Name:        "Equity Analyst",
		Description: "Analyze equity positions and prepare research notes.",
	}
	if err := db.Create(&attachedRole).Error; err != nil {
		t.Fatalf("Failed to create role: %v", err)
	}

	freeRole := model.Role{
		IndustryID:  industry.ID,
		Name:        "Risk Associate",
		Description: "Assess portfolio risk across asset classes.",
	}
	if err := db.Create(&freeRole).Error; err != nil {
		t.Fatalf("Failed to create role: %v", err)
	}

	t.Cleanup(func() {
		eval := offlineEvaluationService(db)
		var internships []model.InternshipTrack
		db.Where("user_id = ?", user.ID).Find(&internships)
		for _, it := range internships {
			eval.DeleteInternship(context.Background(), it.ID)
		}
		db.Unscoped().Where("industry_id = ?", industry.ID).Delete(&model.Role{})
		db.Unscoped().Where("industry_id = ?", industry.ID).Delete(&model.Company{})
		db.Unscoped().Delete(&industry)
		db.Unscoped().Where("user_id = ?", user.ID).Delete(&model.UserProfile{})
		db.Unscoped().Delete(&user)
	})

	t.Run("role with its company", func(t *testing.T) {
		roleID := attachedRole.ID
		companyID := companyA.ID
		internship, err := svc.Enroll(ctx, EnrollRequest{
			UserID:     user.ID,
			IndustryID: industry.ID,
			CompanyID:  &companyID,
			RoleID:     &roleID,
		})
		if err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}

		want := fmt.Sprintf("%s at %s", attachedRole.Name, companyA.Name)
		if internship.Title != want {
			t.Errorf("expected title %q, got %q", want, internship.Title)
		}
		if internship.Description != attachedRole.Description {
			t.Errorf("role description should win, got %q", internship.Description)
		}
	})

	t.Run("role without a company", func(t *testing.T) {
		roleID := freeRole.ID
		internship, err := svc.Enroll(ctx, EnrollRequest{
			UserID:     user.ID,
			IndustryID: industry.ID,
			RoleID:     &roleID,
		})
		if err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}

		want := fmt.Sprintf("%s at Virtual Company", freeRole.Name)
		if internship.Title != want {
			t.Errorf("expected title %q, got %q", want, internship.Title)
		}
		if internship.Description != freeRole.Description {
			t.Errorf("role description should win, got %q", internship.Description)
		}
		if internship.CompanyID != nil {
			t.Errorf("no company should be recorded, got %v", *internship.CompanyID)
		}
	})

	t.Run("role company overrides requested company", func(t *testing.T) {
		roleID := attachedRole.ID
		companyID := companyB.ID
		internship, err := svc.Enroll(ctx, EnrollRequest{
			UserID:     user.ID,
			IndustryID: industry.ID,
			CompanyID:  &companyID,
			RoleID:     &roleID,
		})
		if err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}

		want := fmt.Sprintf("%s at %s", attachedRole.Name, companyA.Name)
		if internship.Title != want {
			t.Errorf("role's own company should name the internship, got %q", internship.Title)
		}
		if internship.CompanyID == nil || *internship.CompanyID != companyA.ID {
			t.Errorf("internship should record the role's company %d, got %v", companyA.ID, internship.CompanyID)
		}
	})
}
