package entity

import "time"

type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(value), true
	}
	return "", false
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// Bcrypt hash, never the clear password.
	PasswordHash string `gorm:"type:text;not null"`
	Role         Role   `gorm:"type:varchar(16);default:'USER';not null"`

	TwoFactorEnabled bool    `gorm:"default:false;not null"`
	TwoFactorSecret  *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
