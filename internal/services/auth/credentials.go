package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var _ CredentialChecker = (*bcryptChecker)(nil)

type bcryptChecker struct {
	hash []byte
}

// NewCredentialChecker creates a checker for a bcrypt hash. An empty hash
// yields a checker that rejects everything with ErrNotConfigured.
func NewCredentialChecker(passwordHash string) *bcryptChecker {
	return &bcryptChecker{hash: []byte(passwordHash)}
}

// Verify compares secret against the stored hash. bcrypt does the same
// amount of work for every candidate, so timing reveals nothing about how
// close a guess was.
func (c *bcryptChecker) Verify(secret string) error {
	if len(c.hash) == 0 {
		return ErrNotConfigured
	}
	err := bcrypt.CompareHashAndPassword(c.hash, []byte(secret))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredential
	default:
		return fmt.Errorf("credential check failed: %w", err)
	}
}

// HashPassword hashes secret for storage in the config file.
func HashPassword(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
