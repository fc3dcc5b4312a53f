package entity

import "time"

type TaskComment struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"not null;index"`
	Task   Task `gorm:"constraint:OnDelete:CASCADE"`

	UserID uint `gorm:"not null"`
	User   User

	Comment string `gorm:"type:text;not null"`

	CreatedAt time.Time
}
