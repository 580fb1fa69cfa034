package iam

import (
	"errors"
	"testing"
	"time"
)

func newTestSigner(t *testing.T, leeway time.Duration) *TokenSigner {
	t.Helper()
	signer, err := NewTokenSigner(SignerConfig{
		Secret:   []byte("test-secret"),
		Issuer:   "askstack",
		Audience: "askstack",
		Leeway:   leeway,
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return signer
}

func TestTokenSignVerify(t *testing.T) {
	signer := newTestSigner(t, 0)

	token, err := signer.Sign(42, time.Hour, "user@askstack.local")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	id, err := claims.SubjectID()
	if err != nil {
		t.Fatalf("subject id: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected subject 42, got %d", id)
	}
	if claims.Email != "user@askstack.local" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	signer := newTestSigner(t, 0)
	other, err := NewTokenSigner(SignerConfig{
		Secret:   []byte("another-secret"),
		Issuer:   "askstack",
		Audience: "askstack",
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	token, err := signer.Sign(1, time.Hour, "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	signer := newTestSigner(t, 0)

	token, err := signer.Sign(1, -time.Minute, "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenLeewayToleratesRecentExpiry(t *testing.T) {
	signer := newTestSigner(t, 5*time.Second)

	token, err := signer.Sign(1, -time.Second, "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(token); err != nil {
		t.Fatalf("expected token within leeway to verify, got %v", err)
	}
}

func TestTokenRejectsWrongIssuerAndAudience(t *testing.T) {
	signer := newTestSigner(t, 0)

	foreign, err := NewTokenSigner(SignerConfig{
		Secret:   []byte("test-secret"),
		Issuer:   "someone-else",
		Audience: "someone-else",
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	token, err := foreign.Sign(1, time.Hour, "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign claims, got %v", err)
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	signer := newTestSigner(t, 0)
	if _, err := signer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSubjectIDRejectsNonNumeric(t *testing.T) {
	claims := &Claims{}
	claims.Subject = "alice"
	if _, err := claims.SubjectID(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenSignerRequiresSecret(t *testing.T) {
	if _, err := NewTokenSigner(SignerConfig{Issuer: "x", Audience: "x"}); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}
