package users_test

import (
	"context"
	"testing"

	"github.com/askstack/askstack/internal/rbac"
	"github.com/askstack/askstack/internal/shared"
	"github.com/askstack/askstack/internal/users"
	_ "github.com/askstack/askstack/testing"
)

type stubRepo struct {
	usersByID map[int64]*users.User
	deleted   []int64
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]users.User, int, error) {
	var list []users.User
	for _, u := range s.usersByID {
		list = append(list, *u)
	}
	return list, len(list), nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*users.User, error) {
	u, ok := s.usersByID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.usersByID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.usersByID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubAssigner struct {
	roleIDs  map[string]int64
	assigned map[int64][]int64
}

func (s *stubAssigner) FindRoleByName(ctx context.Context, name string) (int64, error) {
	id, ok := s.roleIDs[name]
	if !ok {
		return 0, rbac.ErrRoleNotFound
	}
	return id, nil
}

func (s *stubAssigner) AssignRole(ctx context.Context, userID, roleID int64) error {
	if s.assigned == nil {
		s.assigned = make(map[int64][]int64)
	}
	s.assigned[userID] = append(s.assigned[userID], roleID)
	return nil
}

func TestPromoteToPro(t *testing.T) {
	repo := &stubRepo{usersByID: map[int64]*users.User{
		1: {ID: 1, Email: "alice@askstack.local", Roles: []string{rbac.RoleUser}},
	}}
	assigner := &stubAssigner{roleIDs: map[string]int64{rbac.RoleProUser: 2}}
	service := users.NewService(repo, assigner)

	if err := service.PromoteToPro(context.Background(), 1); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if got := assigner.assigned[1]; len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected pro role assigned once, got %v", got)
	}
}

func TestPromoteToProAlreadyPro(t *testing.T) {
	repo := &stubRepo{usersByID: map[int64]*users.User{
		1: {ID: 1, Email: "alice@askstack.local", Roles: []string{rbac.RoleUser, rbac.RoleProUser}},
	}}
	assigner := &stubAssigner{roleIDs: map[string]int64{rbac.RoleProUser: 2}}
	service := users.NewService(repo, assigner)

	if err := service.PromoteToPro(context.Background(), 1); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if len(assigner.assigned) != 0 {
		t.Fatalf("expected no assignment for an existing pro user, got %v", assigner.assigned)
	}
}

func TestPromoteToProUnknownUser(t *testing.T) {
	repo := &stubRepo{usersByID: map[int64]*users.User{}}
	assigner := &stubAssigner{roleIDs: map[string]int64{rbac.RoleProUser: 2}}
	service := users.NewService(repo, assigner)

	if err := service.PromoteToPro(context.Background(), 42); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}
