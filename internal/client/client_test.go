package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"inkhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth struct {
	token string
	err   error
}

func (a staticAuth) Authorize(ctx context.Context) (string, error) {
	return a.token, a.err
}

func TestLoginAndRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/login":
			if body["password"] != "ink" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Invalid password"}`))
				return
			}
			w.Write([]byte(`{"token":"t1"}`))
		case "/api/login/refresh-token":
			assert.Equal(t, "t1", body["token"])
			w.Write([]byte(`{"token":"t2"}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	ctx := context.Background()

	tok, err := c.Login(ctx, "ink")
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)

	tok, err = c.Refresh(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t2", tok)

	_, err = c.Login(ctx, "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid password")
}

func TestProtectedCallsSendBearer(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Auth = staticAuth{token: "abc"}

	require.NoError(t, c.DeleteMedia(context.Background(), "old school", "koi.jpg"))
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "/api/media/old%20school/koi.jpg", gotPath)
}

func TestProtectedCallsStopWhenUnauthenticated(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL)
	notLoggedIn := errors.New("not authenticated")
	c.Auth = staticAuth{err: notLoggedIn}

	err := c.DeleteNews(context.Background(), "n1")
	assert.ErrorIs(t, err, notLoggedIn)
	assert.False(t, called)

	c.Auth = nil
	assert.Error(t, c.DeleteNews(context.Background(), "n1"))
}

func TestListMediaQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "flash", r.URL.Query().Get("category"))
		assert.Equal(t, "image", r.URL.Query().Get("type"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]models.MediaRecord{{ID: "flash/a.png"}})
	}))
	defer srv.Close()

	records, err := New(srv.URL).ListMedia(context.Background(), models.MediaFilter{Category: "flash", Type: models.MediaImage, Limit: 3})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "flash/a.png", records[0].ID)
}

func TestUploadMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "oldschool", r.FormValue("category"))
		files := r.MultipartForm.File["file"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "b.webm", files[1].Filename)
		json.NewEncoder(w).Encode(models.UploadResponse{Message: "ok", Filename: "a.png"})
	}))
	defer srv.Close()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.webm")
	require.NoError(t, os.WriteFile(a, []byte("png"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("webm"), 0644))

	c := New(srv.URL)
	c.Auth = staticAuth{token: "abc"}

	resp, err := c.Upload(context.Background(), "oldschool", a, b)
	require.NoError(t, err)
	assert.Equal(t, "a.png", resp.Filename)

	_, err = c.Upload(context.Background(), "oldschool")
	assert.Error(t, err)

	_, err = c.Upload(context.Background(), "oldschool", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
