// filepath: internal/api/handlers/visit_handler.go
package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
)

// DefaultStatsDays is the window used when ?days= is absent.
const DefaultStatsDays = 30

type visitRequest struct {
	Path string `json:"path"`
}

// @Summary Record a visit
// @Description Record a page view. Repeated views of the same path by the same client within 30 minutes are ignored.
// @Tags Visits
// @Accept   json
// @Param   visit  body  visitRequest  true  "Visited path"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid request body or path"
// @Failure 500 {object} ErrorResponse "Recording failed"
// @Router /visits [post]
func (h *Handlers) RecordVisit(w http.ResponseWriter, r *http.Request) {
	var req visitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.Visits.Record(r.Context(), clientKey(r), req.Path); err != nil {
		respondWithServiceError(w, err, "Recording")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Visit statistics
// @Description Total, per-path and per-day visit counts for the last N days (UTC).
// @Tags Visits
// @Produce  json
// @Param   days  query  int  false  "Window in days (1-366, default 30)"
// @Success 200 {object} models.VisitStats
// @Failure 400 {object} ErrorResponse "Invalid days"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Statistics failed"
// @Security BearerAuth
// @Router /visits/stats [get]
func (h *Handlers) VisitStats(w http.ResponseWriter, r *http.Request) {
	days := DefaultStatsDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid days")
			return
		}
		days = n
	}

	stats, err := h.Visits.Stats(r.Context(), days)
	if err != nil {
		respondWithServiceError(w, err, "Statistics")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// clientKey identifies the visitor by remote IP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
