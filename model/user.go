package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`                              // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, admin
	TokenVersion int            `gorm:"default:0" json:"-"`                             // Increment to invalidate all user tokens

	// Relationships
	Profile        *UserProfile        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Internships    []InternshipTrack   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Submissions    []Submission        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Certificates   []Certificate       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AdminAuditLog  []AdminAuditLog     `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserProfile holds the student profile created alongside each user
type UserProfile struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string    `gorm:"type:varchar(100)" json:"full_name"`
	Major            string    `gorm:"type:varchar(100)" json:"major"`
	University       string    `gorm:"type:varchar(100)" json:"university"`
	CareerInterests  string    `gorm:"type:varchar(200)" json:"career_interests"`
	GraduationYear   int       `json:"graduation_year"`
	Bio              string    `gorm:"type:text" json:"bio"`
	ProfileCompleted bool      `gorm:"default:false" json:"profile_completed"`
}

// TableName specifies the table name for UserProfile
func (UserProfile) TableName() string {
	return "user_profiles"
}
