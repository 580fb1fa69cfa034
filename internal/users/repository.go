package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askstack/askstack/internal/platform/db"
	"github.com/askstack/askstack/internal/shared"
)

// Repository provides PostgreSQL backed persistence for account management.
type Repository struct {
	pool db.Querier
}

// NewRepository constructs a repository.
func NewRepository(pool db.Querier) *Repository {
	return &Repository{pool: pool}
}

// List returns a page of users ordered by id, plus the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, email, created_at, updated_at FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindByID fetches a user with its role names.
func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, created_at, updated_at FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NewError(shared.ErrNotFound, fmt.Sprintf("user with id %d not found", id))
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT r.name FROM roles r JOIN user_role ur ON ur.role_id = r.id WHERE ur.user_id = $1 ORDER BY r.id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		user.Roles = append(user.Roles, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user. Role links go with it via cascading foreign keys.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NewError(shared.ErrNotFound, fmt.Sprintf("user with id %d not found", id))
	}
	return nil
}
