package iam

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askstack/askstack/internal/platform/db"
	"github.com/askstack/askstack/internal/shared"
)

// PGRepository implements UserRepository using PostgreSQL.
type PGRepository struct {
	pool db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool db.Querier) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, email, password_hash, created_at, updated_at`

// FindByEmail fetches a user by email. The match is byte-exact against the
// stored value.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.scanUser(ctx, row)
}

// FindByID fetches a user by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(ctx, row)
}

// ExistsByEmail reports whether an identity with the email is registered.
func (r *PGRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

// Create inserts the user and links the default role in one transaction.
func (r *PGRepository) Create(ctx context.Context, email, passwordHash string, defaultRoleID int64) (*User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var user User
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		email, passwordHash,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_role (user_id, role_id) VALUES ($1, $2)`,
		user.ID, defaultRoleID,
	); err != nil {
		return nil, fmt.Errorf("attach default role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &user, nil
}

// UpdatePassword stores a new password hash for the user.
func (r *PGRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) scanUser(ctx context.Context, row pgx.Row) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT r.name FROM roles r JOIN user_role ur ON ur.role_id = r.id WHERE ur.user_id = $1 ORDER BY r.id`,
		user.ID,
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

var _ UserRepository = (*PGRepository)(nil)
