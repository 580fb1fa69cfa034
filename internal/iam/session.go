package iam

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/askstack/askstack/internal/shared"
)

// ErrTokenNotRecognized indicates a presented token is not among the
// identity's stored session tokens. The session is destroyed as a side
// effect, so a stale or rotated token forces full re-authentication.
var ErrTokenNotRecognized = fmt.Errorf("%w: token not recognized", shared.ErrUnauthorized)

// SessionStore is the server-side authority over which signed tokens are
// currently honored, keyed by identity id. A signed token that verifies but
// is absent here is dead.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore constructs a SessionStore. ttl bounds how long an
// untouched session record survives in redis; it should cover the longest
// token lifetime (the refresh TTL).
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create atomically replaces the identity's session with the given tokens.
// Old tokens become untrusted immediately even while signature-valid; this
// is the revocation mechanism. The delete and insert run in one MULTI/EXEC
// so a concurrent sign-in or refresh can never observe a half-replaced pair.
func (s *SessionStore) Create(ctx context.Context, identityID int64, tokens ...string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("iam: create session without tokens")
	}
	key := s.key(identityID)
	values := make([]any, len(tokens))
	for i, t := range tokens {
		values[i] = t
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// List returns the currently stored tokens for an identity, empty if none.
func (s *SessionStore) List(ctx context.Context, identityID int64) ([]string, error) {
	tokens, err := s.client.LRange(ctx, s.key(identityID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list session tokens: %w", err)
	}
	return tokens, nil
}

// Validate fails with ErrTokenNotRecognized when token is not among the
// identity's stored tokens, destroying the whole session on the way out.
func (s *SessionStore) Validate(ctx context.Context, identityID int64, token string) error {
	tokens, err := s.List(ctx, identityID)
	if err != nil {
		return err
	}
	for _, t := range tokens {
		if t == token {
			return nil
		}
	}
	if err := s.Destroy(ctx, identityID); err != nil {
		return err
	}
	return ErrTokenNotRecognized
}

// Destroy removes the identity's session. Idempotent; a missing session is
// a no-op.
func (s *SessionStore) Destroy(ctx context.Context, identityID int64) error {
	if err := s.client.Del(ctx, s.key(identityID)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(identityID int64) string {
	return fmt.Sprintf("iam:tokens:%d", identityID)
}
