// filepath: internal/services/auth/interfaces.go
package auth

import "time"

// CredentialChecker verifies the shared studio secret.
type CredentialChecker interface {
	Verify(secret string) error
}

// TokenService defines the contract for JWT operations.
type TokenService interface {
	// Login verifies secret and issues a token.
	Login(secret string) (string, error)
	// Issue signs a fresh admin token and returns it with its expiry.
	Issue() (string, time.Time, error)
	// Refresh re-issues a token carrying the same role with a new window.
	Refresh(oldToken string) (string, error)
	// Validate verifies signature and expiry and returns the claims.
	Validate(tokenString string) (*Claims, error)
}
