package iam

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/askstack/askstack/internal/shared"
)

// PermissionResolver maps an identity to its effective capability set via
// role membership. Recomputed per authentication, no caching.
type PermissionResolver interface {
	EffectivePermissions(ctx context.Context, identityID int64) ([]string, error)
}

// noAccessMessage is the single rejection body for every authentication
// failure. Which step failed is never disclosed.
const noAccessMessage = "you have no access, please sign in"

// Authenticator is the per-request authentication gate. Routes that opt out
// (public endpoints) simply don't mount it.
type Authenticator struct {
	logger   *slog.Logger
	signer   *TokenSigner
	sessions *SessionStore
	users    UserRepository
	resolver PermissionResolver
}

// NewAuthenticator constructs the authentication gate middleware.
func NewAuthenticator(logger *slog.Logger, signer *TokenSigner, sessions *SessionStore, users UserRepository, resolver PermissionResolver) *Authenticator {
	return &Authenticator{
		logger:   logger,
		signer:   signer,
		sessions: sessions,
		users:    users,
		resolver: resolver,
	}
}

// Middleware resolves the caller's access token into an authenticated
// identity context: cookie → signature/expiry → session membership →
// identity lookup → effective permissions. Every failure, expected or not,
// collapses to the same 401 body.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			if !shared.IsBusinessError(err) && a.logger != nil {
				a.logger.Error("authentication gate", slog.Any("error", err))
			}
			shared.RespondJSON(w, http.StatusUnauthorized, shared.Error{Error: noAccessMessage})
			return
		}
		ctx := shared.ContextWithActiveUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (*shared.ActiveUser, error) {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil, ErrInvalidToken
	}

	claims, err := a.signer.Verify(cookie.Value)
	if err != nil {
		return nil, err
	}
	subject, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}

	if err := a.sessions.Validate(r.Context(), subject, cookie.Value); err != nil {
		return nil, err
	}

	user, err := a.users.FindByID(r.Context(), subject)
	if err != nil {
		return nil, err
	}

	permissions, err := a.resolver.EffectivePermissions(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}

	return &shared.ActiveUser{
		ID:          user.ID,
		Email:       user.Email,
		Permissions: permissions,
	}, nil
}

// RequirePermissions is the authorization gate: the operation proceeds iff
// the authenticated identity's capability set contains every required
// permission. An empty requirement set always passes.
func RequirePermissions(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := shared.ActiveUserFromContext(r.Context())
			if user == nil {
				shared.RespondJSON(w, http.StatusUnauthorized, shared.Error{Error: noAccessMessage})
				return
			}
			if !user.HasAll(required...) {
				shared.RespondJSON(w, http.StatusForbidden, shared.Error{Error: "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
