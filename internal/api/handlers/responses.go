// internal/api/handlers/responses.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkhub/internal/logging"
	"inkhub/internal/services"
	"inkhub/internal/services/auth"
)

// ErrorResponse is a standard format for API error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a standard format for simple API messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithServiceError maps a service error onto a status code. Anything
// unrecognized is logged and reported as "<action> failed".
func respondWithServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnsupported):
		respondWithError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		logging.Log.Errorf("%s failed: %v", action, err)
		respondWithError(w, http.StatusInternalServerError, action+" failed")
	}
}

// audit records an event when an auditor is configured.
func (h *Handlers) audit(r *http.Request, action, resource string, details map[string]interface{}) {
	if h.Auditor == nil {
		return
	}
	actor := "anonymous"
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		actor = claims.Role
	}
	h.Auditor.Log(r.Context(), action, actor, resource, details)
}
