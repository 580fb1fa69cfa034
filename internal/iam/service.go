package iam

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/askstack/askstack/internal/shared"
)

// Business errors surfaced by the session lifecycle protocols. Their
// messages propagate verbatim; everything else collapses to a generic fault.
var (
	ErrEmailTaken       = shared.NewError(shared.ErrConflict, "user with this email already exists")
	ErrEmailNotFound    = shared.NewError(shared.ErrNotFound, "user with this email does not exist")
	ErrUserNotFound     = shared.NewError(shared.ErrNotFound, "user does not exist")
	ErrPasswordMismatch = shared.NewError(shared.ErrUnauthorized, "passwords do not match")
)

// UserRepository is the slice of user persistence the IAM core depends on.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email, passwordHash string, defaultRoleID int64) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// RoleDirectory resolves seeded roles by name.
type RoleDirectory interface {
	FindRoleByName(ctx context.Context, name string) (int64, error)
}

// Mailer delivers transactional mail out-of-band. Production wiring
// enqueues a background job; tests substitute a recorder.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TokenTTLs groups the three independently configured token lifetimes.
type TokenTTLs struct {
	Access  time.Duration
	Refresh time.Duration
	Reset   time.Duration
}

// DefaultRoleName is attached to every identity on sign-up.
const DefaultRoleName = "user"

// Service orchestrates sign-up, sign-in, token refresh, password reset and
// logout as multi-step protocols across the hasher, signer and session store.
type Service struct {
	logger    *slog.Logger
	users     UserRepository
	roles     RoleDirectory
	hasher    *Hasher
	signer    *TokenSigner
	sessions  *SessionStore
	mailer    Mailer
	ttls      TokenTTLs
	clientURL string
}

// NewService constructs the orchestrator.
func NewService(logger *slog.Logger, users UserRepository, roles RoleDirectory, hasher *Hasher, signer *TokenSigner, sessions *SessionStore, mailer Mailer, ttls TokenTTLs, clientURL string) *Service {
	return &Service{
		logger:    logger,
		users:     users,
		roles:     roles,
		hasher:    hasher,
		signer:    signer,
		sessions:  sessions,
		mailer:    mailer,
		ttls:      ttls,
		clientURL: clientURL,
	}
}

// SignUp registers a new identity with the default role attached.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check existing email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	roleID, err := s.roles.FindRoleByName(ctx, DefaultRoleName)
	if err != nil {
		return fmt.Errorf("resolve default role: %w", err)
	}
	if _, err := s.users.Create(ctx, email, hash, roleID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SignIn verifies credentials and issues a fresh token pair, implicitly
// revoking any prior session for the identity.
func (s *Service) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsBusinessError(err) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		return nil, ErrPasswordMismatch
	}
	return s.issueTokenPair(ctx, user)
}

// Refresh rotates a refresh token: verify, validate against the stored
// session, destroy, reissue. A refresh token is therefore single-use; reuse
// of an already-rotated token destroys the session entirely.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.signer.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	subject, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if shared.IsBusinessError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.sessions.Validate(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}
	if err := s.sessions.Destroy(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.issueTokenPair(ctx, user)
}

// ForgotPassword issues a short-lived reset token, stores it as the
// identity's only live session and mails the reset link. Mail delivery does
// not hold the session store open.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsBusinessError(err) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.signer.Sign(user.ID, s.ttls.Reset, "")
	if err != nil {
		return err
	}
	if err := s.sessions.Create(ctx, user.ID, token); err != nil {
		return err
	}

	body := fmt.Sprintf("To reset your password follow the link: %s/reset-password?token=%s", s.clientURL, token)
	if err := s.mailer.Send(ctx, user.Email, "Reset your password", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// The session slot holding the token is destroyed afterwards so the token
// cannot authorize a second reset.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return err
	}
	subject, err := claims.SubjectID()
	if err != nil {
		return err
	}

	if err := s.sessions.Validate(ctx, subject, token); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if shared.IsBusinessError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Consume the reset token; it must not survive a successful reset.
	return s.sessions.Destroy(ctx, user.ID)
}

// Logout destroys the identity's session. Idempotent.
func (s *Service) Logout(ctx context.Context, identityID int64) error {
	return s.sessions.Destroy(ctx, identityID)
}

// VerifyToken exposes claim extraction to the authentication gate.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return s.signer.Verify(token)
}

// issueTokenPair signs a fresh access+refresh pair and atomically replaces
// the identity's session with it.
func (s *Service) issueTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	access, err := s.signer.Sign(user.ID, s.ttls.Access, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signer.Sign(user.ID, s.ttls.Refresh, "")
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, user.ID, access, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
