package service

import (
	"context"
	"time"

	"taskboard/internal/entity"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	tasks    repository.TaskRepository
	comments repository.TaskCommentRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewTaskService(
	tasks repository.TaskRepository,
	comments repository.TaskCommentRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
) *TaskService {
	return &TaskService{tasks: tasks, comments: comments, projects: projects, users: users}
}

type CreateTaskInput struct {
	ProjectID    uuid.UUID
	Title        string
	Description  string
	Status       entity.TaskStatus
	Priority     entity.TaskPriority
	DueDate      *time.Time
	AssignedToID *uint
}

type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *entity.TaskStatus
	Priority     *entity.TaskPriority
	DueDate      *time.Time
	AssignedToID *uint
}

func (s *TaskService) Create(ctx context.Context, creatorEmail string, input CreateTaskInput) (*entity.Task, error) {
	if input.Title == "" {
		return nil, ErrInvalidInput
	}

	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	creator, err := s.users.FindByEmail(ctx, creatorEmail)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrUserNotFound
	}

	task := &entity.Task{
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedByID: creator.ID,
	}
	if input.AssignedToID != nil {
		assignee, err := s.users.FindByID(ctx, *input.AssignedToID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, ErrAssigneeNotFound
		}
		task.AssignedToID = input.AssignedToID
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Update applies only the fields present in the input; absent fields keep
// their stored values.
func (s *TaskService) Update(ctx context.Context, id uint, input UpdateTaskInput) (*entity.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssignedToID != nil {
		assignee, err := s.users.FindByID(ctx, *input.AssignedToID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, ErrAssigneeNotFound
		}
		task.AssignedToID = input.AssignedToID
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	return s.tasks.Delete(ctx, id)
}

// ListForProject returns every task in the project, assignee preloaded.
func (s *TaskService) ListForProject(ctx context.Context, projectID uuid.UUID) ([]entity.Task, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return s.tasks.FindByProject(ctx, projectID)
}

// ListAssignedInProject narrows the project's tasks to the acting user.
func (s *TaskService) ListAssignedInProject(ctx context.Context, projectID uuid.UUID, userEmail string) ([]entity.Task, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	user, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.tasks.FindByProjectAndAssignee(ctx, projectID, user.ID)
}

// MarkToReview flips the task into TO_REVIEW, the hand-off state an assignee
// uses to signal the work is ready for checking.
func (s *TaskService) MarkToReview(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = entity.TaskToReview
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) AddComment(ctx context.Context, taskID uint, authorEmail string, text string) (*entity.TaskComment, error) {
	if text == "" {
		return nil, ErrInvalidInput
	}
	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByEmail(ctx, authorEmail)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	comment := &entity.TaskComment{
		TaskID:  task.ID,
		UserID:  author.ID,
		Comment: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *author
	return comment, nil
}

func (s *TaskService) ListComments(ctx context.Context, taskID uint) ([]entity.TaskComment, error) {
	if _, err := s.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.comments.FindByTask(ctx, taskID)
}
