// filepath: internal/api/handlers/visit_handler_test.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecordVisit(t *testing.T) {
	t.Run("client key is the remote host", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Record", mock.Anything, "203.0.113.7", "/gallery").Return(true, nil)

		req := jsonRequest(t, "POST", "/api/visits", visitRequest{Path: "/gallery"})
		req.RemoteAddr = "203.0.113.7:52311"
		rr := serve(newTestRouter(h), req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		deps.Visits.AssertExpectations(t)
	})

	t.Run("duplicate is still 204", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Record", mock.Anything, mock.Anything, "/").Return(false, nil)

		rr := serve(newTestRouter(h), jsonRequest(t, "POST", "/api/visits", visitRequest{Path: "/"}))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("invalid path", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Record", mock.Anything, mock.Anything, "gallery").
			Return(false, fmt.Errorf("%w: path must start with '/'", services.ErrValidation))

		rr := serve(newTestRouter(h), jsonRequest(t, "POST", "/api/visits", visitRequest{Path: "gallery"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestVisitStats(t *testing.T) {
	t.Run("default window", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Stats", mock.Anything, DefaultStatsDays).Return(&models.VisitStats{Total: 3}, nil)

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/visits/stats"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total":3`)
	})

	t.Run("explicit days", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Stats", mock.Anything, 7).Return(&models.VisitStats{}, nil)

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/visits/stats?days=7"))

		assert.Equal(t, http.StatusOK, rr.Code)
		deps.Visits.AssertExpectations(t)
	})

	t.Run("non numeric days", func(t *testing.T) {
		h, _ := setupHandlers(t)

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/visits/stats?days=week"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("out of range days", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Stats", mock.Anything, 0).Return(nil, fmt.Errorf("%w: days must be between 1 and 366", services.ErrValidation))

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/visits/stats?days=0"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("repository failure", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.Visits.On("Stats", mock.Anything, DefaultStatsDays).Return(nil, errors.New("db locked"))

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/visits/stats"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Statistics failed", decodeError(t, rr))
	})
}
