package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askstack/askstack/internal/platform/db"
	"github.com/askstack/askstack/internal/shared"
)

// ErrRoleNotFound indicates the requested role does not exist.
var ErrRoleNotFound = shared.NewError(shared.ErrNotFound, "role does not exist")

// Service resolves roles and effective permissions from the relational
// store. Identity↔Role↔Permission are plain foreign-key joins; nothing here
// holds an in-memory object graph.
type Service struct {
	pool db.Querier
}

// NewService constructs a Service backed by the provided pool.
func NewService(pool db.Querier) *Service {
	return &Service{pool: pool}
}

// EffectivePermissions returns the deduplicated union of permission names
// over all of the identity's roles. Recomputed per authentication.
func (s *Service) EffectivePermissions(ctx context.Context, identityID int64) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permission rp ON rp.permission_id = p.id
		JOIN user_role ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1
		ORDER BY p.name`, identityID)
	if err != nil {
		return nil, fmt.Errorf("effective permissions: %w", err)
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perms, nil
}

// FindRoleByName fetches a seeded role id by name.
func (s *Service) FindRoleByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrRoleNotFound
		}
		return 0, fmt.Errorf("find role: %w", err)
	}
	return id, nil
}

// RolesOf returns the identity's assigned roles ordered by id.
func (s *Service) RolesOf(ctx context.Context, identityID int64) ([]Role, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.name, r.created_at, r.updated_at
		FROM roles r
		JOIN user_role ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id`, identityID)
	if err != nil {
		return nil, fmt.Errorf("roles of user: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// AssignRole links a role to the given user. Idempotent.
func (s *Service) AssignRole(ctx context.Context, userID, roleID int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_role (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID,
	)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}
