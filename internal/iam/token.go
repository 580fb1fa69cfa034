package iam

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/askstack/askstack/internal/shared"
)

// ErrInvalidToken indicates the token failed signature, issuer, audience or
// expiry validation. It wraps shared.ErrUnauthorized so callers map it to 401.
var ErrInvalidToken = fmt.Errorf("%w: invalid token", shared.ErrUnauthorized)

// Claims are the JWT claims carried by every token this service issues.
// Email is only populated on access tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the numeric identity id from the subject claim.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// SignerConfig configures the token signer. TTL selection is the caller's
// concern; the signer binds issuer, audience, secret and verification leeway.
type SignerConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// TokenSigner builds and verifies signed, time-bounded identity assertions
// using HS256.
type TokenSigner struct {
	cfg SignerConfig
}

// NewTokenSigner constructs a TokenSigner.
func NewTokenSigner(cfg SignerConfig) (*TokenSigner, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("iam: signer requires a secret")
	}
	if cfg.Leeway < 0 {
		return nil, errors.New("iam: negative leeway")
	}
	return &TokenSigner{cfg: cfg}, nil
}

// Sign produces a self-contained token for the subject with absolute expiry
// now+ttl. Pass a non-empty email only when issuing access tokens.
func (s *TokenSigner) Sign(subjectID int64, ttl time.Duration, email string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, audience and expiry. Expiry is compared
// against the wall clock with the configured leeway. Any mismatch, including
// a valid signature with passed expiry, yields ErrInvalidToken.
func (s *TokenSigner) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.Secret, nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.cfg.Leeway),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
