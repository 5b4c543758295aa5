// filepath: internal/services/auth/token_service_test.go
package auth

import (
	"errors"
	"testing"
	"time"

	"inkhub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "super-secret-key-for-testing"

// fixedChecker accepts exactly one secret.
type fixedChecker struct{ want string }

func (c fixedChecker) Verify(secret string) error {
	if secret != c.want {
		return ErrInvalidCredential
	}
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestTokenService(t *testing.T, acceptExpired bool) (*tokenService, *clock) {
	t.Helper()
	cfg := &config.Config{
		Auth:     config.AuthConfig{Secret: testSecret, RefreshAcceptExpired: acceptExpired},
		TokenTTL: 2 * time.Hour,
	}
	svc := NewTokenService(cfg, fixedChecker{want: "letmein"})
	c := &clock{t: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)}
	svc.now = c.now
	return svc, c
}

// decode reads claims without verification, the way a client would.
func decode(t *testing.T, token string) *Claims {
	t.Helper()
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	return claims
}

func TestLogin_IssuesAdminTokenForTwoHours(t *testing.T) {
	svc, c := newTestTokenService(t, false)

	token, err := svc.Login("letmein")
	require.NoError(t, err)

	claims := decode(t, token)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, c.t.Add(2*time.Hour), claims.ExpiresAt.Time, time.Second)
	assert.WithinDuration(t, c.t, claims.IssuedAt.Time, time.Second)
}

func TestLogin_WrongSecret(t *testing.T) {
	svc, _ := newTestTokenService(t, false)

	_, err := svc.Login("nope")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_NotConfiguredFailsClosed(t *testing.T) {
	svc := NewTokenService(&config.Config{}, NewCredentialChecker(""))

	_, err := svc.Login("")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Refresh("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Validate("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRefresh_ExtendsExpiry(t *testing.T) {
	svc, c := newTestTokenService(t, false)

	old, err := svc.Login("letmein")
	require.NoError(t, err)
	oldExp := decode(t, old).ExpiresAt.Time

	c.t = c.t.Add(100 * time.Minute)
	fresh, err := svc.Refresh(old)
	require.NoError(t, err)

	claims := decode(t, fresh)
	assert.True(t, claims.ExpiresAt.Time.After(oldExp))
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.WithinDuration(t, c.t.Add(2*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestRefresh_SameSecondStillMovesForward(t *testing.T) {
	svc, _ := newTestTokenService(t, false)

	old, err := svc.Login("letmein")
	require.NoError(t, err)

	fresh, err := svc.Refresh(old)
	require.NoError(t, err)
	assert.True(t, decode(t, fresh).ExpiresAt.Time.After(decode(t, old).ExpiresAt.Time))
}

func TestRefresh_ExpiredToken(t *testing.T) {
	t.Run("rejected by default", func(t *testing.T) {
		svc, c := newTestTokenService(t, false)
		old, err := svc.Login("letmein")
		require.NoError(t, err)

		c.t = c.t.Add(3 * time.Hour)
		_, err = svc.Refresh(old)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("accepted in permissive mode", func(t *testing.T) {
		svc, c := newTestTokenService(t, true)
		old, err := svc.Login("letmein")
		require.NoError(t, err)

		c.t = c.t.Add(3 * time.Hour)
		fresh, err := svc.Refresh(old)
		require.NoError(t, err)
		assert.WithinDuration(t, c.t.Add(2*time.Hour), decode(t, fresh).ExpiresAt.Time, time.Second)
	})

	t.Run("permissive mode still checks the signature", func(t *testing.T) {
		svc, _ := newTestTokenService(t, true)
		forged := signWith(t, "another-secret", jwt.SigningMethodHS256, RoleAdmin, time.Now().Add(time.Hour))

		_, err := svc.Refresh(forged)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func signWith(t *testing.T, secret string, method jwt.SigningMethod, role string, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidate_UniformRejection(t *testing.T) {
	svc, c := newTestTokenService(t, false)
	good, err := svc.Login("letmein")
	require.NoError(t, err)

	expired := signWith(t, testSecret, jwt.SigningMethodHS256, RoleAdmin, c.t.Add(-time.Minute))
	badSig := signWith(t, "wrong-secret", jwt.SigningMethodHS256, RoleAdmin, c.t.Add(time.Hour))
	wrongAlg := signWith(t, testSecret, jwt.SigningMethodHS512, RoleAdmin, c.t.Add(time.Hour))
	noRole := signWith(t, testSecret, jwt.SigningMethodHS256, "", c.t.Add(time.Hour))

	claims, err := svc.Validate(good)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	for name, token := range map[string]string{
		"expired":   expired,
		"bad sig":   badSig,
		"wrong alg": wrongAlg,
		"no role":   noRole,
		"garbage":   "not.a.token",
		"empty":     "",
		"tampered":  good + "a",
	} {
		_, err := svc.Validate(token)
		assert.True(t, errors.Is(err, ErrUnauthorized), "%s: expected ErrUnauthorized, got %v", name, err)
	}
}

func TestCredentialChecker(t *testing.T) {
	hash, err := HashPassword("studio-secret")
	require.NoError(t, err)
	checker := NewCredentialChecker(hash)

	assert.NoError(t, checker.Verify("studio-secret"))
	assert.ErrorIs(t, checker.Verify("wrong"), ErrInvalidCredential)

	broken := NewCredentialChecker("not-a-bcrypt-hash")
	err = broken.Verify("studio-secret")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredential))
	assert.True(t, errors.Is(err, bcrypt.ErrHashTooShort))

	assert.ErrorIs(t, NewCredentialChecker("").Verify("x"), ErrNotConfigured)

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	require.NoError(t, err)
	b, err := GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
