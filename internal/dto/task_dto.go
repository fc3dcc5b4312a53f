package dto

import (
	"time"

	"taskboard/internal/entity"
)

type CreateTaskRequest struct {
	ProjectID    string     `json:"projectId" validate:"required,uuid"`
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS TO_REVIEW VERIFIED DONE ARCHIVED"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate      *time.Time `json:"dueDate"`
	AssignedToID *uint      `json:"assignedToId"`
}

type UpdateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS TO_REVIEW VERIFIED DONE ARCHIVED"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate      *time.Time `json:"dueDate"`
	AssignedToID *uint      `json:"assignedToId"`
}

type TaskResponse struct {
	ID                uint       `json:"id"`
	ProjectID         string     `json:"projectId"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	AssigneeFirstName string     `json:"assigneeFirstName,omitempty"`
	AssigneeLastName  string     `json:"assigneeLastName,omitempty"`
}

type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type TaskCommentResponse struct {
	ID        uint      `json:"id"`
	Comment   string    `json:"comment"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

func TaskResponseFromEntity(task *entity.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.AssignedTo != nil {
		response.AssigneeFirstName = task.AssignedTo.FirstName
		response.AssigneeLastName = task.AssignedTo.LastName
	}
	return response
}

func TaskResponsesFromEntities(tasks []entity.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, TaskResponseFromEntity(&tasks[i]))
	}
	return responses
}

func TaskCommentResponseFromEntity(comment *entity.TaskComment) TaskCommentResponse {
	return TaskCommentResponse{
		ID:        comment.ID,
		Comment:   comment.Comment,
		FirstName: comment.User.FirstName,
		LastName:  comment.User.LastName,
		CreatedAt: comment.CreatedAt,
	}
}

func TaskCommentResponsesFromEntities(comments []entity.TaskComment) []TaskCommentResponse {
	responses := make([]TaskCommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, TaskCommentResponseFromEntity(&comments[i]))
	}
	return responses
}
