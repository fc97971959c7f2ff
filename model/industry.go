package model

import (
	"time"

	"gorm.io/gorm"
)

// Industry represents an industry vertical students can intern in
type Industry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"uniqueIndex;type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `gorm:"type:varchar(50)" json:"icon"`

	// Relationships
	Companies []Company `gorm:"foreignKey:IndustryID;constraint:OnDelete:CASCADE" json:"companies,omitempty"`
	Roles     []Role    `gorm:"foreignKey:IndustryID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
}

// TableName specifies the table name for Industry
func (Industry) TableName() string {
	return "industries"
}

// Company represents a fictional or real company inside an industry
type Company struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	IndustryID  uint           `gorm:"not null;index" json:"industry_id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Logo        string         `gorm:"type:varchar(255)" json:"logo"`
	Website     string         `gorm:"type:varchar(255)" json:"website"`
	Location    string         `gorm:"type:varchar(100)" json:"location"`

	// Relationships
	Industry Industry `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
	Roles    []Role   `gorm:"foreignKey:CompanyID" json:"roles,omitempty"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}

// Role represents an internship role offered within an industry,
// optionally tied to a specific company
type Role struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	IndustryID      uint           `gorm:"not null;index" json:"industry_id"`
	CompanyID       *uint          `gorm:"index" json:"company_id,omitempty"`
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Requirements    string         `gorm:"type:text" json:"requirements"`
	SkillsRequired  string         `gorm:"type:text" json:"skills_required"`
	ExperienceLevel string         `gorm:"type:varchar(20);default:'entry'" json:"experience_level"` // entry, intermediate, advanced

	// Relationships
	Industry Industry `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
	Company  *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}
