// filepath: internal/services/auth/token_service.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"inkhub/internal/config"
	"inkhub/internal/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	// RoleAdmin is the only role the studio back-office knows.
	RoleAdmin = "admin"
	// Issuer is written to and required in every token.
	Issuer = "inkhub"
	// DefaultTokenTTL is the validity window of a token.
	DefaultTokenTTL = 2 * time.Hour
)

// Claims defines the custom claims carried by a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Compile-time check to ensure tokenService implements the TokenService interface.
var _ TokenService = (*tokenService)(nil)

// tokenService implements the TokenService interface with stateless HS256
// tokens. Nothing is persisted server-side; expiry is the only revocation.
type tokenService struct {
	secret        []byte
	ttl           time.Duration
	acceptExpired bool
	checker       CredentialChecker
	now           func() time.Time
}

// NewTokenService creates a new instance of the tokenService.
func NewTokenService(cfg *config.Config, checker CredentialChecker) *tokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenService{
		secret:        []byte(cfg.Auth.Secret),
		ttl:           ttl,
		acceptExpired: cfg.Auth.RefreshAcceptExpired,
		checker:       checker,
		now:           time.Now,
	}
}

// Login verifies secret and issues a token.
func (s *tokenService) Login(secret string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNotConfigured
	}
	if err := s.checker.Verify(secret); err != nil {
		return "", err
	}
	token, _, err := s.Issue()
	return token, err
}

// Issue signs a fresh admin token.
func (s *tokenService) Issue() (string, time.Time, error) {
	return s.issue(RoleAdmin, time.Time{})
}

// issue signs a token for role. The expiry is kept strictly after notBefore
// so a refresh always moves it forward.
func (s *tokenService) issue(role string, notBefore time.Time) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrNotConfigured
	}

	now := s.now()
	expiry := now.Add(s.ttl).Truncate(time.Second)
	if !notBefore.IsZero() && !expiry.After(notBefore) {
		expiry = notBefore.Add(time.Second)
	}

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        ulid.Make().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiry, nil
}

func (s *tokenService) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(s.now),
	)
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		logging.Log.Debugf("Token rejected: %v", err)
		return nil, ErrUnauthorized
	}
	if !token.Valid || claims.Role == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// Validate verifies signature, algorithm, issuer and expiry.
func (s *tokenService) Validate(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNotConfigured
	}
	return s.parse(tokenString)
}

// Refresh re-issues oldToken with a new validity window. The old token must
// carry a valid signature. It must also still be unexpired unless the
// permissive refresh_accept_expired mode is enabled.
func (s *tokenService) Refresh(oldToken string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNotConfigured
	}

	var opts []jwt.ParserOption
	if s.acceptExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	claims, err := s.parse(oldToken, opts...)
	if err != nil {
		return "", err
	}
	if claims.Role != RoleAdmin {
		return "", ErrUnauthorized
	}
	if s.acceptExpired && claims.Issuer != Issuer {
		// WithoutClaimsValidation also skips the issuer check.
		return "", ErrUnauthorized
	}

	var oldExpiry time.Time
	if claims.ExpiresAt != nil {
		oldExpiry = claims.ExpiresAt.Time
	}
	token, _, err := s.issue(claims.Role, oldExpiry)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return "", err
		}
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	return token, nil
}
