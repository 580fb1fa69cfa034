package questions_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/askstack/askstack/internal/questions"
	"github.com/askstack/askstack/internal/shared"
	_ "github.com/askstack/askstack/testing"
)

type stubRepo struct {
	byID   map[int64]*questions.Question
	nextID int64

	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[int64]*questions.Question), nextID: 1}
}

func (s *stubRepo) Create(ctx context.Context, title, body string, userID int64) (*questions.Question, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	now := time.Now()
	q := &questions.Question{ID: s.nextID, Title: title, Body: body, UserID: userID, CreatedAt: now, UpdatedAt: now}
	s.byID[q.ID] = q
	s.nextID++
	copied := *q
	return &copied, nil
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]questions.Question, int, error) {
	var list []questions.Question
	for _, q := range s.byID {
		list = append(list, *q)
	}
	return list, len(list), nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*questions.Question, error) {
	q, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

type stubPromoter struct {
	promoted []int64
	err      error
}

func (s *stubPromoter) PromoteToPro(ctx context.Context, userID int64) error {
	if s.err != nil {
		return s.err
	}
	s.promoted = append(s.promoted, userID)
	return nil
}

func TestCreatePromotesAuthor(t *testing.T) {
	repo := newStubRepo()
	promoter := &stubPromoter{}
	service := questions.NewService(slog.New(slog.DiscardHandler), repo, promoter)

	q, err := service.Create(context.Background(), "How do goroutines work?", "Details inside.", 7)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.ID == 0 || q.UserID != 7 {
		t.Fatalf("unexpected question: %+v", q)
	}
	if len(promoter.promoted) != 1 || promoter.promoted[0] != 7 {
		t.Fatalf("expected author promoted, got %v", promoter.promoted)
	}
}

func TestCreateSurvivesPromotionFailure(t *testing.T) {
	repo := newStubRepo()
	promoter := &stubPromoter{err: errors.New("rbac unavailable")}
	service := questions.NewService(slog.New(slog.DiscardHandler), repo, promoter)

	q, err := service.Create(context.Background(), "How do goroutines work?", "Details inside.", 7)
	if err != nil {
		t.Fatalf("create should succeed despite promotion failure, got %v", err)
	}
	if _, err := service.FindByID(context.Background(), q.ID); err != nil {
		t.Fatalf("expected question persisted: %v", err)
	}
}

func TestCreateFailsWhenRepoFails(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = errors.New("db down")
	promoter := &stubPromoter{}
	service := questions.NewService(slog.New(slog.DiscardHandler), repo, promoter)

	if _, err := service.Create(context.Background(), "title here", "body", 7); err == nil {
		t.Fatalf("expected error")
	}
	if len(promoter.promoted) != 0 {
		t.Fatalf("no promotion on failed create")
	}
}
