package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProjectRole string

const (
	ProjectRoleManager     ProjectRole = "PROJECT_MANAGER"
	ProjectRoleTechLead    ProjectRole = "TECH_LEAD"
	ProjectRoleDeveloper   ProjectRole = "DEVELOPER"
	ProjectRoleTester      ProjectRole = "TESTER"
	ProjectRoleAnalyst     ProjectRole = "ANALYST"
	ProjectRoleDesigner    ProjectRole = "DESIGNER"
	ProjectRoleScrumMaster ProjectRole = "SCRUM_MASTER"
	ProjectRoleDevOps      ProjectRole = "DEVOPS_ENGINEER"
)

type ProjectMember struct {
	ID        uint      `gorm:"primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	UserID uint `gorm:"not null;uniqueIndex:idx_project_user"`
	User   User

	ProjectRole ProjectRole `gorm:"type:varchar(32);not null"`
	JoinedAt    time.Time
}
