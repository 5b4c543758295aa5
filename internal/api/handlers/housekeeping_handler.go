// filepath: internal/api/handlers/housekeeping_handler.go
package handlers

import (
	"net/http"
)

// @Summary Trigger housekeeping
// @Description Run the storage cleanup immediately: stale upload temp files and orphaned thumbnails are removed.
// @Tags Admin
// @Produce  json
// @Success 200 {object} models.HousekeepingReport
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Housekeeping failed"
// @Security BearerAuth
// @Router /admin/housekeeping [post]
func (h *Handlers) TriggerHousekeeping(w http.ResponseWriter, r *http.Request) {
	report, err := h.Housekeeping.RunOnce()
	if err != nil {
		respondWithServiceError(w, err, "Housekeeping")
		return
	}

	h.audit(r, "housekeeping.run", "storage", map[string]interface{}{
		"temp_files_removed":        report.TempFilesRemoved,
		"orphan_thumbnails_removed": report.OrphanThumbnailsRemoved,
		"bytes_freed":               report.BytesFreed,
	})
	respondWithJSON(w, http.StatusOK, report)
}
