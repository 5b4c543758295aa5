// filepath: internal/services/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"inkhub/internal/logging"
	"inkhub/internal/services"
)

type claimsKey struct{}

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	Token TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(token TokenService) *Middleware {
	return &Middleware{Token: token}
}

// ClaimsFromContext returns the claims stored by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// RequireAdmin rejects the request unless it carries a valid Bearer token
// with the admin role. Every failure produces the same 401 body.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="inkhub"`)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := m.Token.Validate(strings.TrimSpace(tokenString))
		if err != nil {
			if errors.Is(err, ErrNotConfigured) {
				logging.Log.Error("RequireAdmin: authentication is not configured; run 'inkhub setup'")
			} else {
				logging.Log.Warnf("RequireAdmin: rejected token for %s %s", r.Method, r.URL.Path)
			}
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if claims.Role != RoleAdmin {
			logging.Log.Warnf("RequireAdmin: role '%s' denied for %s", claims.Role, r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		ctx = services.WithActor(ctx, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
