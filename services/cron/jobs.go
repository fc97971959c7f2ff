package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/internship-simulator/model"
)

// AdvanceInternshipWeeks generates the next week of tasks for every
// active internship whose current week is fully evaluated and which has
// weeks remaining.
func (m *CronManager) AdvanceInternshipWeeks() {
	jobName := "advance_internship_weeks"
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var internships []model.InternshipTrack
	if err := m.db.Where("status = ?", model.InternshipStatusActive).Find(&internships).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}

	advanced := 0
	for i := range internships {
		internship := &internships[i]

		// Current week is the highest week with tasks
		var currentWeek int
		row := m.db.Model(&model.Task{}).
			Select("COALESCE(MAX(week), 0)").
			Where("internship_id = ?", internship.ID).
			Row()
		if err := row.Scan(&currentWeek); err != nil {
			m.logJobError(jobName, err)
			return
		}

		if currentWeek == 0 || currentWeek >= internship.DurationWeeks {
			continue
		}

		// Only advance once every task in the current week is evaluated
		var pending int64
		if err := m.db.Model(&model.Task{}).
			Where("internship_id = ? AND week = ? AND status != ?", internship.ID, currentWeek, model.TaskStatusEvaluated).
			Count(&pending).Error; err != nil {
			m.logJobError(jobName, err)
			return
		}
		if pending > 0 {
			continue
		}

		created, err := m.internships.GenerateWeeklyTasks(ctx, internship, currentWeek+1)
		if err != nil {
			m.logJobError(jobName, err)
			return
		}
		if created > 0 {
			advanced++
		}
	}

	m.logJobComplete(jobName, fmt.Sprintf("Advanced %d of %d active internships", advanced, len(internships)))
}

// CleanupTokenBlacklist removes expired entries from the JWT blacklist
func (m *CronManager) CleanupTokenBlacklist() {
	jobName := "cleanup_token_blacklist"

	result := m.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired tokens", result.RowsAffected))
}

// staleInternshipAge is how long an active internship may sit without
// any task activity before being marked abandoned
const staleInternshipAge = 90 * 24 * time.Hour

// AbandonStaleInternships marks active internships with no task updates
// in the stale window as abandoned
func (m *CronManager) AbandonStaleInternships() {
	jobName := "abandon_stale_internships"
	cutoff := time.Now().Add(-staleInternshipAge)

	// An internship is stale when neither it nor any of its tasks has
	// been touched since the cutoff
	result := m.db.Model(&model.InternshipTrack{}).
		Where("status = ? AND updated_at < ?", model.InternshipStatusActive, cutoff).
		Where("NOT EXISTS (SELECT 1 FROM tasks WHERE tasks.internship_id = internship_tracks.id AND tasks.updated_at >= ?)", cutoff).
		Update("status", model.InternshipStatusAbandoned)
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Marked %d internships abandoned", result.RowsAffected))
}
