// filepath: internal/api/handlers/auth_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"inkhub/internal/logging"
	"inkhub/internal/services/auth"
)

// loginRequest is the JSON body for the login endpoint.
type loginRequest struct {
	Password string `json:"password"`
}

// refreshRequest is the JSON body for the refresh endpoint.
type refreshRequest struct {
	Token string `json:"token"`
}

// tokenResponse is the JSON body returned on successful token generation.
type tokenResponse struct {
	Token string `json:"token"`
}

// @Summary Log in
// @Description Exchange the studio password for a signed admin token valid for two hours.
// @Tags Auth
// @Accept   json
// @Produce  json
// @Param   credentials  body  loginRequest  true  "Studio password"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Invalid password"
// @Failure 500 {object} ErrorResponse "Login failed"
// @Router /login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.Token.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredential):
			logging.Log.Warnf("Login: invalid password from %s", r.RemoteAddr)
			h.audit(r, "auth.login_failed", "session", nil)
			respondWithError(w, http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, auth.ErrNotConfigured):
			logging.Log.Error("Login rejected: authentication is not configured; run 'inkhub setup'")
			respondWithError(w, http.StatusUnauthorized, "Invalid password")
		default:
			logging.Log.Errorf("Login failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.audit(r, "auth.login", "session", nil)
	respondWithJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// @Summary Refresh token
// @Description Exchange a valid token for a new one with a fresh two hour window.
// @Tags Auth
// @Accept   json
// @Produce  json
// @Param   token  body  refreshRequest  true  "Current token"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Token refresh failed"
// @Router /login/refresh-token [post]
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	token, err := h.Token.Refresh(strings.TrimSpace(req.Token))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnauthorized):
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, auth.ErrNotConfigured):
			logging.Log.Error("Refresh rejected: authentication is not configured; run 'inkhub setup'")
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		default:
			logging.Log.Errorf("Token refresh failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Token refresh failed")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{Token: token})
}
