package entity

import (
	"time"

	"gorm.io/datatypes"
)

type SecurityAction string

const (
	LoginSuccess  SecurityAction = "login_success"
	LoginFailed   SecurityAction = "login_failed"
	TwoFactorSet  SecurityAction = "2fa_enabled"
	TwoFactorFail SecurityAction = "2fa_failed"
	RoleChanged   SecurityAction = "role_changed"
)

type SecurityLog struct {
	ID uint `gorm:"primaryKey"`

	UserID *uint `gorm:"index"`
	User   *User `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    SecurityAction `gorm:"type:varchar(32);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
