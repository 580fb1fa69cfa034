package users

import (
	"context"
	"slices"

	"github.com/askstack/askstack/internal/rbac"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]User, int, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// RoleAssigner is the slice of rbac the users service needs for promotion.
type RoleAssigner interface {
	FindRoleByName(ctx context.Context, name string) (int64, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
}

// Service handles account management logic.
type Service struct {
	repo  RepositoryPort
	roles RoleAssigner
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, roles RoleAssigner) *Service {
	return &Service{repo: repo, roles: roles}
}

// List returns a page of users and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// FindByID returns a user with roles loaded.
func (s *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes a user account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// PromoteToPro grants the pro_user role the first time an identity
// contributes content. No-op when the role is already assigned.
func (s *Service) PromoteToPro(ctx context.Context, userID int64) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if slices.Contains(user.Roles, rbac.RoleProUser) {
		return nil
	}
	roleID, err := s.roles.FindRoleByName(ctx, rbac.RoleProUser)
	if err != nil {
		return err
	}
	return s.roles.AssignRole(ctx, userID, roleID)
}
