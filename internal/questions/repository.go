package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askstack/askstack/internal/platform/db"
	"github.com/askstack/askstack/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool db.Querier
}

// NewRepository constructs a repository.
func NewRepository(pool db.Querier) *Repository {
	return &Repository{pool: pool}
}

const questionColumns = `id, title, body, user_id, created_at, updated_at`

// Create inserts a question.
func (r *Repository) Create(ctx context.Context, title, body string, userID int64) (*Question, error) {
	var q Question
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions (title, body, user_id) VALUES ($1, $2, $3) RETURNING `+questionColumns,
		title, body, userID,
	).Scan(&q.ID, &q.Title, &q.Body, &q.UserID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return &q, nil
}

// List returns a page of questions newest-first, plus the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Question, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM questions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var list []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Body, &q.UserID, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		list = append(list, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindByID fetches a question by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Question, error) {
	var q Question
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.Body, &q.UserID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NewError(shared.ErrNotFound, fmt.Sprintf("question with id %d not found", id))
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return &q, nil
}
