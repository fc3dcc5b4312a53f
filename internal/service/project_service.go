package service

import (
	"context"

	"taskboard/internal/entity"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type ProjectService struct {
	projects repository.ProjectRepository
	members  repository.ProjectMemberRepository
	users    repository.UserRepository
	clock    Clock
}

func NewProjectService(
	projects repository.ProjectRepository,
	members repository.ProjectMemberRepository,
	users repository.UserRepository,
	clock Clock,
) *ProjectService {
	return &ProjectService{projects: projects, members: members, users: users, clock: clock}
}

type CreateProjectInput struct {
	Name        string
	Description string
	Status      entity.ProjectStatus
	Icon        string
}

type UpdateProjectInput struct {
	Name        string
	Description string
	Status      entity.ProjectStatus
}

func (s *ProjectService) ListForCreator(ctx context.Context, creatorEmail string) ([]entity.Project, error) {
	creator, err := s.resolveUser(ctx, creatorEmail)
	if err != nil {
		return nil, err
	}
	return s.projects.FindByCreator(ctx, creator.ID)
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, creatorEmail string, input CreateProjectInput) (*entity.Project, error) {
	if input.Name == "" {
		return nil, ErrInvalidProjectData
	}
	creator, err := s.resolveUser(ctx, creatorEmail)
	if err != nil {
		return nil, err
	}

	project := &entity.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Icon:        input.Icon,
		CreatedByID: creator.ID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*entity.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Description = input.Description
	project.Status = input.Status
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.projects.Delete(ctx, id)
}

func (s *ProjectService) AddMember(ctx context.Context, projectID uuid.UUID, userEmail string, role entity.ProjectRole) (*entity.ProjectMember, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	existing, err := s.members.FindByProjectAndUser(ctx, project.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	member := &entity.ProjectMember{
		ProjectID:   project.ID,
		UserID:      user.ID,
		ProjectRole: role,
		JoinedAt:    s.clock.Now(),
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}
	member.User = *user
	return member, nil
}

func (s *ProjectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectMember, error) {
	if _, err := s.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.members.FindByProject(ctx, projectID)
}

func (s *ProjectService) RemoveMember(ctx context.Context, projectID uuid.UUID, userID uint) error {
	if _, err := s.GetByID(ctx, projectID); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	member, err := s.members.FindByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	return s.members.Delete(ctx, member.ID)
}

// ListMemberProjects returns the projects the user belongs to as a member,
// as opposed to the ones they created.
func (s *ProjectService) ListMemberProjects(ctx context.Context, userEmail string) ([]entity.Project, error) {
	user, err := s.resolveUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	memberships, err := s.members.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(memberships))
	projects := make([]entity.Project, 0, len(memberships))
	for _, m := range memberships {
		if seen[m.ProjectID] {
			continue
		}
		seen[m.ProjectID] = true
		projects = append(projects, m.Project)
	}
	return projects, nil
}

func (s *ProjectService) resolveUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
