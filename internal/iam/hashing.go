package iam

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way password hashing and verification using bcrypt.
// The salt and cost parameters are embedded in the hash output, so
// verification needs no side data.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher. A cost outside bcrypt's valid range falls
// back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the plaintext password.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether plaintext matches the stored hash.
func (h *Hasher) Compare(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
