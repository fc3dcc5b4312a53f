package service

import (
	"context"

	"taskboard/internal/entity"
	"taskboard/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}
