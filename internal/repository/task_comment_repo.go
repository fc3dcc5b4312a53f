package repository

import (
	"context"

	"taskboard/internal/entity"

	"gorm.io/gorm"
)

type TaskCommentRepository interface {
	Create(ctx context.Context, comment *entity.TaskComment) error
	FindByTask(ctx context.Context, taskID uint) ([]entity.TaskComment, error)
}

type taskCommentRepository struct {
	db *gorm.DB
}

func NewTaskCommentRepository(db *gorm.DB) TaskCommentRepository {
	return &taskCommentRepository{db: db}
}

func (r *taskCommentRepository) Create(ctx context.Context, comment *entity.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *taskCommentRepository) FindByTask(ctx context.Context, taskID uint) ([]entity.TaskComment, error) {
	var comments []entity.TaskComment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
