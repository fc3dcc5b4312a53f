package service

import (
	"context"

	"taskboard/internal/entity"
	"taskboard/internal/repository"
)

type AdminService struct {
	users        repository.UserRepository
	securityLogs repository.SecurityLogRepository
}

func NewAdminService(users repository.UserRepository, securityLogs repository.SecurityLogRepository) *AdminService {
	return &AdminService{users: users, securityLogs: securityLogs}
}

// ChangeUserRole switches a user between USER and MANAGER. Promoting to
// ADMIN through this path is rejected; admins exist only via startup seeding.
func (s *AdminService) ChangeUserRole(ctx context.Context, email string, newRole string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	role, ok := entity.ParseRole(newRole)
	if !ok || role == entity.RoleAdmin {
		return ErrInvalidRole
	}

	previous := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if s.securityLogs != nil {
		_ = s.securityLogs.Log(ctx, &entity.SecurityLog{
			UserID: &user.ID,
			Action: entity.RoleChanged,
			Metadata: []byte(
				`{"from":"` + string(previous) + `","to":"` + string(role) + `"}`,
			),
		})
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}
