// Package client is a small HTTP client for the inkhub API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"inkhub/internal/models"
)

// Authorizer hands out a usable token for protected calls.
// session.Manager implements it.
type Authorizer interface {
	Authorize(ctx context.Context) (string, error)
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client calls the inkhub API at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Auth    Authorizer
}

// New creates a client for baseURL. Auth may be set later.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Minute},
	}
}

type tokenBody struct {
	Token string `json:"token"`
}

// Login exchanges the password for a token.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var out tokenBody
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", "", map[string]string{"password": password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Refresh exchanges token for a fresh one.
func (c *Client) Refresh(ctx context.Context, token string) (string, error) {
	var out tokenBody
	if err := c.doJSON(ctx, http.MethodPost, "/api/login/refresh-token", "", tokenBody{Token: token}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Info fetches the public service information.
func (c *Client) Info(ctx context.Context) (*models.Info, error) {
	var out models.Info
	if err := c.doJSON(ctx, http.MethodGet, "/api/info", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMedia lists stored media matching filter.
func (c *Client) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.MediaRecord, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	path := "/api/media"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.MediaRecord
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists the non-empty categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.doJSON(ctx, http.MethodGet, "/api/media/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload sends the files at paths into category in one request.
func (c *Client) Upload(ctx context.Context, category string, paths ...string) (*models.UploadResponse, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to upload")
	}
	token, err := c.authorize(ctx)
	if err != nil {
		return nil, err
	}

	body, contentType, err := multipartBody(category, paths)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	var out models.UploadResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// multipartBody buffers the form; uploads are studio photos and clips, not archives.
func multipartBody(category string, paths []string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("category", category); err != nil {
		return nil, "", err
	}
	for _, p := range paths {
		if err := addFilePart(mw, p); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func addFilePart(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// DeleteMedia removes category/filename.
func (c *Client) DeleteMedia(ctx context.Context, category, filename string) error {
	token, err := c.authorize(ctx)
	if err != nil {
		return err
	}
	path := "/api/media/" + url.PathEscape(category) + "/" + url.PathEscape(filename)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// ListNews lists news posts; desc selects newest first.
func (c *Client) ListNews(ctx context.Context, desc bool) ([]models.NewsItem, error) {
	path := "/api/news"
	if desc {
		path += "?order=desc"
	}
	var out []models.NewsItem
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateNews publishes a news post.
func (c *Client) CreateNews(ctx context.Context, payload models.NewsCreatePayload) (*models.NewsItem, error) {
	token, err := c.authorize(ctx)
	if err != nil {
		return nil, err
	}
	var out models.NewsItem
	if err := c.doJSON(ctx, http.MethodPost, "/api/news", token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNews removes a news post.
func (c *Client) DeleteNews(ctx context.Context, id string) error {
	token, err := c.authorize(ctx)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/api/news/"+url.PathEscape(id), token, nil, nil)
}

// VisitStats fetches visit statistics for the last days days.
func (c *Client) VisitStats(ctx context.Context, days int) (*models.VisitStats, error) {
	token, err := c.authorize(ctx)
	if err != nil {
		return nil, err
	}
	var out models.VisitStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/visits/stats?days="+strconv.Itoa(days), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunHousekeeping triggers a storage cleanup on the server.
func (c *Client) RunHousekeeping(ctx context.Context) (*models.HousekeepingReport, error) {
	token, err := c.authorize(ctx)
	if err != nil {
		return nil, err
	}
	var out models.HousekeepingReport
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/housekeeping", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) authorize(ctx context.Context) (string, error) {
	if c.Auth == nil {
		return "", errors.New("client has no authorizer")
	}
	return c.Auth.Authorize(ctx)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
