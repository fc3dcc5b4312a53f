package repository

import (
	"context"
	"errors"

	"taskboard/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectMemberRepository interface {
	Create(ctx context.Context, member *entity.ProjectMember) error
	FindByProjectAndUser(ctx context.Context, projectID uuid.UUID, userID uint) (*entity.ProjectMember, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectMember, error)
	FindByUser(ctx context.Context, userID uint) ([]entity.ProjectMember, error)
	Delete(ctx context.Context, id uint) error
}

type projectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &projectMemberRepository{db: db}
}

func (r *projectMemberRepository) Create(ctx context.Context, member *entity.ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *projectMemberRepository) FindByProjectAndUser(ctx context.Context, projectID uuid.UUID, userID uint) (*entity.ProjectMember, error) {
	var member entity.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *projectMemberRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectMember, error) {
	var members []entity.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *projectMemberRepository) FindByUser(ctx context.Context, userID uint) ([]entity.ProjectMember, error) {
	var members []entity.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ?", userID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *projectMemberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ProjectMember{}, id).Error
}
