package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskToReview   TaskStatus = "TO_REVIEW"
	TaskVerified   TaskStatus = "VERIFIED"
	TaskDone       TaskStatus = "DONE"
	TaskArchived   TaskStatus = "ARCHIVED"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

type Task struct {
	ID        uint      `gorm:"primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	Title       string       `gorm:"type:varchar(255);not null"`
	Description string       `gorm:"type:text"`
	Status      TaskStatus   `gorm:"type:varchar(16)"`
	Priority    TaskPriority `gorm:"type:varchar(8)"`
	DueDate     *time.Time

	CreatedByID uint
	CreatedBy   User `gorm:"foreignKey:CreatedByID"`

	AssignedToID *uint
	AssignedTo   *User `gorm:"foreignKey:AssignedToID"`

	Comments []TaskComment

	CreatedAt time.Time
	UpdatedAt time.Time
}
