package shared

import "context"

// ActiveUser describes the authenticated identity attached to a request by
// the authentication gate: the subject id and email from the verified token
// plus the effective permission set resolved from role membership.
type ActiveUser struct {
	ID          int64
	Email       string
	Permissions []string
}

// HasAll reports whether every required permission is present. An empty
// requirement set always passes.
func (u *ActiveUser) HasAll(required ...string) bool {
	if len(required) == 0 {
		return true
	}
	if u == nil {
		return false
	}
	granted := make(map[string]struct{}, len(u.Permissions))
	for _, p := range u.Permissions {
		granted[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := granted[p]; !ok {
			return false
		}
	}
	return true
}

type activeUserContextKey struct{}

// ContextWithActiveUser stores the authenticated identity in context.
func ContextWithActiveUser(ctx context.Context, user *ActiveUser) context.Context {
	return context.WithValue(ctx, activeUserContextKey{}, user)
}

// ActiveUserFromContext extracts the authenticated identity from context.
// Returns nil when the request did not pass the authentication gate.
func ActiveUserFromContext(ctx context.Context) *ActiveUser {
	user, _ := ctx.Value(activeUserContextKey{}).(*ActiveUser)
	return user
}
