// filepath: internal/api/handlers/info_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	h, deps := setupHandlers(t)
	testInfo := models.Info{
		ServiceName:     "inkhub API",
		Version:         "v1.2.3-test",
		UptimeSince:     time.Now().UTC().Truncate(time.Second),
		FFmpegAvailable: true,
		AuthConfigured:  true,
	}
	deps.Info.On("GetInfo").Return(testInfo)

	req := httptest.NewRequest("GET", "/api/info", nil)
	rr := httptest.NewRecorder()
	h.GetInfo(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var response models.Info
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "inkhub API", response.ServiceName)
	assert.True(t, response.AuthConfigured)
	deps.Info.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	HealthCheck(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK\n", rr.Body.String())
}
