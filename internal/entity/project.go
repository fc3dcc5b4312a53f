package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectArchived  ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string        `gorm:"type:varchar(255);not null"`
	Description string        `gorm:"type:text"`
	Status      ProjectStatus `gorm:"type:varchar(16)"`
	Icon        string        `gorm:"type:varchar(8)"`

	CreatedByID uint
	CreatedBy   User `gorm:"foreignKey:CreatedByID"`

	Members []ProjectMember
	Tasks   []Task

	CreatedAt time.Time
	UpdatedAt time.Time
}
