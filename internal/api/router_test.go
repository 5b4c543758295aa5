package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkhub/internal/api/handlers"
	"inkhub/internal/config"
	"inkhub/internal/models"
	"inkhub/internal/services"
	"inkhub/internal/services/auth"
	"inkhub/internal/services/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerDeps struct {
	Token *mocks.MockTokenService
	Media *mocks.MockMediaStore
	News  *mocks.MockNewsStore
}

func setupRouter(t *testing.T, webRoot string) (http.Handler, *routerDeps, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.Root = root
	cfg.Server.WebRoot = webRoot
	require.NoError(t, cfg.ParseAndValidate())

	deps := &routerDeps{
		Token: new(mocks.MockTokenService),
		Media: new(mocks.MockMediaStore),
		News:  new(mocks.MockNewsStore),
	}
	auditor := new(mocks.MockAuditor)
	auditor.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()

	h := handlers.NewHandlers(new(mocks.MockInfoService), deps.Token, new(mocks.MockUploadService),
		deps.Media, deps.News, new(mocks.MockVisitService), new(mocks.MockHousekeepingService), auditor, cfg)

	return SetupRouter(h, auth.NewMiddleware(deps.Token), cfg), deps, root
}

func adminClaims() *auth.Claims {
	return &auth.Claims{Role: auth.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Issuer: auth.Issuer}}
}

func TestRouter_PublicAndAdminShareAPath(t *testing.T) {
	r, deps, _ := setupRouter(t, "")
	deps.News.On("List", mock.Anything, services.NewsOrderAsc).Return([]models.NewsItem{}, nil)
	deps.News.On("Add", mock.Anything, mock.Anything).Return(&models.NewsItem{ID: "n1", Title: "x"}, nil)
	deps.Token.On("Validate", "good").Return(adminClaims(), nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/news", nil))
	assert.Equal(t, http.StatusOK, rr.Code, "listing news is public")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, newJSONRequest("POST", "/api/news", `{"title":"x"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "creating news needs a token")
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, newJSONRequest("POST", "/api/news", `{"title":"x"}`, "good"))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRouter_AdminRoutesRejectWithoutToken(t *testing.T) {
	r, deps, _ := setupRouter(t, "")

	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/upload"},
		{"POST", "/api/media/upload"},
		{"DELETE", "/api/media/oldschool/koi.jpg"},
		{"DELETE", "/api/news/n1"},
		{"GET", "/api/visits/stats"},
		{"POST", "/api/admin/housekeeping"},
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
	}
	deps.Media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_RejectedToken(t *testing.T) {
	r, deps, _ := setupRouter(t, "")
	deps.Token.On("Validate", "expired").Return(nil, auth.ErrUnauthorized)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newJSONRequest("DELETE", "/api/news/n1", "", "expired"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_ServesStoredFiles(t *testing.T) {
	r, _, root := setupRouter(t, "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "oldschool"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "oldschool", "koi.jpg"), []byte("jpeg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "oldschool", ".upload-123"), []byte("partial"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".thumbs", "oldschool"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".thumbs", "oldschool", "koi.jpg.jpg"), []byte("thumb"), 0644))

	get := func(path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		return rr
	}

	rr := get("/uploads/oldschool/koi.jpg")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "jpeg", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	rr = get("/thumbs/oldschool/koi.jpg.jpg")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "thumb", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, get("/uploads/oldschool/").Code, "no directory listing")
	assert.Equal(t, http.StatusNotFound, get("/uploads/oldschool/.upload-123").Code, "temp files stay hidden")
	assert.Equal(t, http.StatusNotFound, get("/uploads/.thumbs/oldschool/koi.jpg.jpg").Code)
}

func TestRouter_UnknownAPIPathIsJSON404(t *testing.T) {
	webRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "index.html"), []byte("spa"), 0644))
	r, _, _ := setupRouter(t, webRoot)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/gallery", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "spa", rr.Body.String())
}

func TestRequestLogger_KeepsClientID(t *testing.T) {
	var seen string
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "client-7")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "client-7", seen)
	assert.Equal(t, "client-7", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func newJSONRequest(method, target, body, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRouter_WrongMethodOnAPI(t *testing.T) {
	r, _, _ := setupRouter(t, "")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
