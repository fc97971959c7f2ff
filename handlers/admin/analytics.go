package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/model"
	"github.com/sahilchouksey/internship-simulator/utils/response"
	"gorm.io/gorm"
)

// GetOverviewAnalytics retrieves system-wide overview statistics
// GET /admin/analytics/overview
func GetOverviewAnalytics(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var stats struct {
		TotalUsers           int64
		TotalIndustries      int64
		TotalInternships     int64
		ActiveInternships    int64
		CompletedInternships int64
		TotalSubmissions     int64
		TotalCertificates    int64
		SubmissionsToday     int64
		SubmissionsThisWeek  int64
	}

	// Fetch all counts
	db.Model(&model.User{}).Count(&stats.TotalUsers)
	db.Model(&model.Industry{}).Count(&stats.TotalIndustries)
	db.Model(&model.InternshipTrack{}).Count(&stats.TotalInternships)
	db.Model(&model.InternshipTrack{}).Where("status = ?", model.InternshipStatusActive).Count(&stats.ActiveInternships)
	db.Model(&model.InternshipTrack{}).Where("status = ?", model.InternshipStatusCompleted).Count(&stats.CompletedInternships)
	db.Model(&model.Submission{}).Count(&stats.TotalSubmissions)
	db.Model(&model.Certificate{}).Count(&stats.TotalCertificates)

	// Recent submission activity
	db.Model(&model.Submission{}).
		Where("submitted_at >= ?", time.Now().Add(-24*time.Hour)).
		Count(&stats.SubmissionsToday)
	db.Model(&model.Submission{}).
		Where("submitted_at >= ?", time.Now().Add(-7*24*time.Hour)).
		Count(&stats.SubmissionsThisWeek)

	return response.SuccessWithMessage(c, "Overview analytics retrieved successfully", stats)
}

// GetUserAnalytics retrieves detailed user analytics
// GET /admin/analytics/users
func GetUserAnalytics(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var analytics struct {
		TotalUsers  int64
		UsersByRole []struct {
			Role  string
			Count int64
		}
		UserGrowth []struct {
			Date  string
			Count int64
		}
		TopUsers []struct {
			UserID      uint
			Username    string
			Email       string
			Submissions int64
		}
	}

	// Total users
	db.Model(&model.User{}).Count(&analytics.TotalUsers)

	// Users by role
	db.Model(&model.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&analytics.UsersByRole)

	// User growth (last 30 days)
	db.Raw(`
		SELECT DATE(created_at) as date, COUNT(*) as count
		FROM users
		WHERE created_at >= NOW() - INTERVAL '30 days'
		AND deleted_at IS NULL
		GROUP BY DATE(created_at)
		ORDER BY date ASC
	`).Scan(&analytics.UserGrowth)

	// Most active students by submission count
	db.Raw(`
		SELECT s.user_id, u.username, u.email, COUNT(*) as submissions
		FROM submissions s
		JOIN users u ON s.user_id = u.id
		WHERE s.submitted_at >= NOW() - INTERVAL '30 days'
		GROUP BY s.user_id, u.username, u.email
		ORDER BY submissions DESC
		LIMIT 10
	`).Scan(&analytics.TopUsers)

	return response.SuccessWithMessage(c, "User analytics retrieved successfully", analytics)
}

// GetInternshipAnalytics retrieves internship and evaluation analytics
// GET /admin/analytics/internships
func GetInternshipAnalytics(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var analytics struct {
		TotalInternships      int64
		InternshipsByStatus   []struct {
			Status string
			Count  int64
		}
		InternshipsByIndustry []struct {
			IndustryID   uint
			IndustryName string
			Count        int64
		}
		AverageProgress  float64
		AverageScore     float64
		CompletionRate   float64
		ScoreByDifficulty []struct {
			Difficulty string
			AvgScore   float64
			Count      int64
		}
		SubmissionsByDay []struct {
			Date        string
			Submissions int64
		}
	}

	// Counts
	db.Model(&model.InternshipTrack{}).Count(&analytics.TotalInternships)

	db.Model(&model.InternshipTrack{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&analytics.InternshipsByStatus)

	db.Raw(`
		SELECT i.id as industry_id, i.name as industry_name, COUNT(t.id) as count
		FROM industries i
		JOIN internship_tracks t ON i.id = t.industry_id
		WHERE t.deleted_at IS NULL
		GROUP BY i.id, i.name
		ORDER BY count DESC
	`).Scan(&analytics.InternshipsByIndustry)

	// Averages
	db.Model(&model.InternshipTrack{}).
		Select("COALESCE(AVG(progress), 0)").
		Scan(&analytics.AverageProgress)
	db.Model(&model.Submission{}).
		Where("score IS NOT NULL").
		Select("COALESCE(AVG(score), 0)").
		Scan(&analytics.AverageScore)

	var completed int64
	db.Model(&model.InternshipTrack{}).Where("status = ?", model.InternshipStatusCompleted).Count(&completed)
	if analytics.TotalInternships > 0 {
		analytics.CompletionRate = float64(completed) / float64(analytics.TotalInternships) * 100
	}

	// Score distribution by task difficulty
	db.Raw(`
		SELECT t.difficulty, COALESCE(AVG(s.score), 0) as avg_score, COUNT(s.id) as count
		FROM submissions s
		JOIN tasks t ON s.task_id = t.id
		WHERE s.score IS NOT NULL
		GROUP BY t.difficulty
	`).Scan(&analytics.ScoreByDifficulty)

	// Submission trend (last 30 days)
	db.Raw(`
		SELECT DATE(submitted_at) as date, COUNT(*) as submissions
		FROM submissions
		WHERE submitted_at >= NOW() - INTERVAL '30 days'
		GROUP BY DATE(submitted_at)
		ORDER BY date ASC
	`).Scan(&analytics.SubmissionsByDay)

	return response.SuccessWithMessage(c, "Internship analytics retrieved successfully", analytics)
}

// GetCronAnalytics retrieves recent cron job runs
// GET /admin/analytics/cron
func GetCronAnalytics(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}

	var logs []model.CronJobLog
	if err := db.Order("started_at DESC").Limit(50).Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch cron job logs")
	}

	return response.SuccessWithMessage(c, "Cron job logs retrieved successfully", logs)
}
