package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Internship track statuses
const (
	InternshipStatusActive    = "active"
	InternshipStatusCompleted = "completed"
	InternshipStatusAbandoned = "abandoned"
)

// Task statuses, ordered. A task only ever moves forward through these.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusSubmitted  = "submitted"
	TaskStatusEvaluated  = "evaluated"
)

// taskStatusRank orders task statuses for the forward-only transition check
var taskStatusRank = map[string]int{
	TaskStatusPending:    0,
	TaskStatusInProgress: 1,
	TaskStatusSubmitted:  2,
	TaskStatusEvaluated:  3,
}

// InternshipTrack represents one user's enrollment in a generated internship
type InternshipTrack struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	IndustryID    uint           `gorm:"not null;index" json:"industry_id"`
	CompanyID     *uint          `gorm:"index" json:"company_id,omitempty"`
	RoleID        *uint          `gorm:"index" json:"role_id,omitempty"`
	Title         string         `gorm:"type:varchar(200);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	DurationWeeks int            `gorm:"default:8" json:"duration_weeks"`
	Status        string         `gorm:"type:varchar(20);default:'active';index" json:"status"` // active, completed, abandoned
	Progress      float64        `gorm:"default:0" json:"progress"`
	StartedAt     time.Time      `json:"started_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Industry    Industry    `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
	Company     *Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Role        *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Tasks       []Task      `gorm:"foreignKey:InternshipID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Certificate *Certificate `gorm:"foreignKey:InternshipID;constraint:OnDelete:CASCADE" json:"certificate,omitempty"`
}

// TableName specifies the table name for InternshipTrack
func (InternshipTrack) TableName() string {
	return "internship_tracks"
}

// IsActive reports whether the internship is still running
func (t *InternshipTrack) IsActive() bool {
	return t.Status == InternshipStatusActive
}

// Task represents a single week-scoped assignment within an internship
type Task struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	InternshipID uint           `gorm:"not null;index" json:"internship_id"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	Difficulty   string         `gorm:"type:varchar(20);default:'medium'" json:"difficulty"` // easy, medium, hard
	Points       int            `gorm:"default:100" json:"points"`
	Status       string         `gorm:"type:varchar(20);default:'pending';index" json:"status"` // pending, in_progress, submitted, evaluated
	Week         int            `gorm:"default:1;index" json:"week"`
	Deadline     *time.Time     `json:"deadline,omitempty"`

	// Relationships
	Internship  InternshipTrack `gorm:"foreignKey:InternshipID" json:"-"`
	Submissions []Submission    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// CanTransitionTo reports whether moving the task to newStatus is a
// forward move. Statuses never go backward.
func (t *Task) CanTransitionTo(newStatus string) bool {
	cur, ok := taskStatusRank[t.Status]
	if !ok {
		return false
	}
	next, ok := taskStatusRank[newStatus]
	if !ok {
		return false
	}
	return next > cur
}

// Submission represents a student's answer to a task, with AI feedback
// attached after evaluation
type Submission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	TaskID      uint           `gorm:"not null;index" json:"task_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	FileURLs    datatypes.JSON `json:"file_urls,omitempty"`
	Score       *float64       `json:"score,omitempty"`
	Feedback    datatypes.JSON `json:"feedback,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
	EvaluatedAt *time.Time     `json:"evaluated_at,omitempty"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}

// IsEvaluated reports whether feedback has been written back
func (s *Submission) IsEvaluated() bool {
	return s.EvaluatedAt != nil
}

// Certificate represents the completion certificate for an internship.
// The unique index on InternshipID guarantees at most one certificate
// per internship even under concurrent evaluation workers.
type Certificate struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	InternshipID   uint           `gorm:"uniqueIndex;not null" json:"internship_id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Title          string         `gorm:"type:varchar(200);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Score          float64        `json:"score"`
	SkillsAcquired datatypes.JSON `json:"skills_acquired,omitempty"`
	IssuedAt       time.Time      `json:"issued_at"`
	CertificateURL string         `gorm:"type:varchar(255)" json:"certificate_url"`

	// Relationships
	Internship InternshipTrack `gorm:"foreignKey:InternshipID" json:"internship,omitempty"`
	User       User            `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Certificate
func (Certificate) TableName() string {
	return "certificates"
}
