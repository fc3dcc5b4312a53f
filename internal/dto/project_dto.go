package dto

import (
	"time"

	"taskboard/internal/entity"
)

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED ARCHIVED"`
	Icon        string `json:"icon" validate:"omitempty,max=8"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED ARCHIVED"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AddProjectMemberRequest struct {
	UserEmail   string `json:"userEmail" validate:"required,email"`
	ProjectRole string `json:"projectRole" validate:"required"`
}

type ProjectMemberResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	ProjectRole string    `json:"projectRole"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func ProjectResponseFromEntity(project *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		Icon:        project.Icon,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func ProjectResponsesFromEntities(projects []entity.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, ProjectResponseFromEntity(&projects[i]))
	}
	return responses
}

func ProjectMemberResponseFromEntity(member *entity.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		ID:          member.ID,
		UserID:      member.UserID,
		Email:       member.User.Email,
		FirstName:   member.User.FirstName,
		LastName:    member.User.LastName,
		ProjectRole: string(member.ProjectRole),
		JoinedAt:    member.JoinedAt,
	}
}

func ProjectMemberResponsesFromEntities(members []entity.ProjectMember) []ProjectMemberResponse {
	responses := make([]ProjectMemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, ProjectMemberResponseFromEntity(&members[i]))
	}
	return responses
}
