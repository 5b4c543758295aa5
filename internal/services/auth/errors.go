package auth

import "errors"

var (
	// ErrInvalidCredential means the submitted secret did not match.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrUnauthorized is the single outcome for any token that fails
	// verification: bad signature, wrong algorithm, expired or malformed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConfigured means no credential hash or signing secret has been
	// provisioned. Every login and refresh is rejected until setup runs.
	ErrNotConfigured = errors.New("authentication not configured")
)
