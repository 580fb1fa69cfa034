package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/askstack/askstack/internal/shared"
	_ "github.com/askstack/askstack/testing"
)

func TestNewErrorKeepsKindAndMessage(t *testing.T) {
	err := shared.NewError(shared.ErrConflict, "email already taken")

	if err.Error() != "email already taken" {
		t.Fatalf("expected caller-facing message, got %q", err.Error())
	}
	if !errors.Is(err, shared.ErrConflict) {
		t.Fatalf("expected error to match its kind")
	}
	if errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error must not match other kinds")
	}
}

func TestNewErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", shared.NewError(shared.ErrUnauthorized, "bad token"))
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Fatalf("expected kind to survive wrapping")
	}
}

func TestIsBusinessError(t *testing.T) {
	for _, kind := range []error{shared.ErrConflict, shared.ErrNotFound, shared.ErrUnauthorized, shared.ErrForbidden} {
		if !shared.IsBusinessError(shared.NewError(kind, "x")) {
			t.Fatalf("expected %v to be a business error", kind)
		}
	}
	if shared.IsBusinessError(errors.New("disk on fire")) {
		t.Fatalf("arbitrary errors are not business errors")
	}
	if shared.IsBusinessError(nil) {
		t.Fatalf("nil is not a business error")
	}
}
