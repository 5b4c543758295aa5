// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkhub/internal/config"
	"inkhub/internal/services/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testDeps bundles the mocks behind a Handlers value.
type testDeps struct {
	Info         *mocks.MockInfoService
	Token        *mocks.MockTokenService
	Upload       *mocks.MockUploadService
	Media        *mocks.MockMediaStore
	News         *mocks.MockNewsStore
	Visits       *mocks.MockVisitService
	Housekeeping *mocks.MockHousekeepingService
	Auditor      *mocks.MockAuditor
}

func setupHandlers(t *testing.T) (*Handlers, *testDeps) {
	t.Helper()
	deps := &testDeps{
		Info:         new(mocks.MockInfoService),
		Token:        new(mocks.MockTokenService),
		Upload:       new(mocks.MockUploadService),
		Media:        new(mocks.MockMediaStore),
		News:         new(mocks.MockNewsStore),
		Visits:       new(mocks.MockVisitService),
		Housekeeping: new(mocks.MockHousekeepingService),
		Auditor:      new(mocks.MockAuditor),
	}
	// Audit calls are incidental to most tests.
	deps.Auditor.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()

	cfg := &config.Config{}
	require.NoError(t, cfg.ParseAndValidate())

	h := NewHandlers(deps.Info, deps.Token, deps.Upload, deps.Media, deps.News,
		deps.Visits, deps.Housekeeping, deps.Auditor, cfg)
	return h, deps
}

// newTestRouter mounts the handlers without auth so path variables resolve.
func newTestRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/login/refresh-token", h.RefreshToken).Methods("POST")
	api.HandleFunc("/upload", h.UploadMedia).Methods("POST")
	api.HandleFunc("/media", h.ListMedia).Methods("GET")
	api.HandleFunc("/media/categories", h.ListCategories).Methods("GET")
	api.HandleFunc("/media/{category}/{filename}", h.DeleteMedia).Methods("DELETE")
	api.HandleFunc("/news", h.ListNews).Methods("GET")
	api.HandleFunc("/news", h.CreateNews).Methods("POST")
	api.HandleFunc("/news/{id}", h.DeleteNews).Methods("DELETE")
	api.HandleFunc("/visits", h.RecordVisit).Methods("POST")
	api.HandleFunc("/visits/stats", h.VisitStats).Methods("GET")
	api.HandleFunc("/admin/housekeeping", h.TriggerHousekeeping).Methods("POST")
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	Name    string
	Content []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files []formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("file", f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func httptestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
