package questions

import (
	"context"
	"fmt"
	"log/slog"
)

// RepositoryPort defines data access methods for questions.
type RepositoryPort interface {
	Create(ctx context.Context, title, body string, userID int64) (*Question, error)
	List(ctx context.Context, limit, offset int) ([]Question, int, error)
	FindByID(ctx context.Context, id int64) (*Question, error)
}

// Promoter escalates an author's privileges after a qualifying action.
type Promoter interface {
	PromoteToPro(ctx context.Context, userID int64) error
}

// Service handles question business logic.
type Service struct {
	logger   *slog.Logger
	repo     RepositoryPort
	promoter Promoter
}

// NewService builds a Service instance.
func NewService(logger *slog.Logger, repo RepositoryPort, promoter Promoter) *Service {
	return &Service{logger: logger, repo: repo, promoter: promoter}
}

// Create persists a question and promotes its author to pro_user. A failed
// promotion does not fail the post; it is logged and retried on the next
// contribution.
func (s *Service) Create(ctx context.Context, title, body string, userID int64) (*Question, error) {
	q, err := s.repo.Create(ctx, title, body, userID)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	if err := s.promoter.PromoteToPro(ctx, userID); err != nil && s.logger != nil {
		s.logger.Warn("promote author", slog.Int64("user_id", userID), slog.Any("error", err))
	}
	return q, nil
}

// List returns a page of questions and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Question, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// FindByID returns a question by id.
func (s *Service) FindByID(ctx context.Context, id int64) (*Question, error) {
	return s.repo.FindByID(ctx, id)
}
