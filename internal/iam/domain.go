package iam

import "time"

// User is the identity view the IAM core needs: credentials plus the role
// names used for permission resolution. Full account management lives in the
// users module.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair carries the signed access and refresh tokens issued on sign-in
// and refresh. Reset-token issuance leaves RefreshToken empty.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Cookie names used as the transport-level credential carriers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)
