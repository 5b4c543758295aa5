// filepath: internal/api/handlers/news_handler_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListNews(t *testing.T) {
	t.Run("default order is ascending", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.News.On("List", mock.Anything, services.NewsOrderAsc).Return([]models.NewsItem{{ID: "1"}, {ID: "2"}}, nil)

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/news"))

		require.Equal(t, http.StatusOK, rr.Code)
		var items []models.NewsItem
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
		assert.Equal(t, "1", items[0].ID)
	})

	t.Run("desc", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.News.On("List", mock.Anything, services.NewsOrderDesc).Return([]models.NewsItem{}, nil)

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/news?order=desc"))

		assert.Equal(t, http.StatusOK, rr.Code)
		deps.News.AssertExpectations(t)
	})

	t.Run("invalid order", func(t *testing.T) {
		h, _ := setupHandlers(t)

		rr := serve(newTestRouter(h), httptestRequest("GET", "/api/news?order=sideways"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreateNews(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, deps := setupHandlers(t)
		payload := models.NewsCreatePayload{Title: "Guest artist", Body: "In March"}
		deps.News.On("Add", mock.Anything, payload).Return(&models.NewsItem{
			ID:        "01HZY",
			Title:     "Guest artist",
			Body:      "In March",
			CreatedAt: time.Now().UTC(),
		}, nil)

		rr := serve(newTestRouter(h), jsonRequest(t, "POST", "/api/news", payload))

		require.Equal(t, http.StatusCreated, rr.Code)
		var item models.NewsItem
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
		assert.Equal(t, "01HZY", item.ID)
		deps.Auditor.AssertCalled(t, "Log", mock.Anything, "news.create", mock.Anything, "news:01HZY", mock.Anything)
	})

	t.Run("missing title", func(t *testing.T) {
		h, deps := setupHandlers(t)
		deps.News.On("Add", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: title is required", services.ErrValidation))

		rr := serve(newTestRouter(h), jsonRequest(t, "POST", "/api/news", models.NewsCreatePayload{}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "title is required")
	})
}

func TestDeleteNews(t *testing.T) {
	h, deps := setupHandlers(t)
	deps.News.On("Delete", mock.Anything, "unknown").Return(nil)

	rr := serve(newTestRouter(h), httptestRequest("DELETE", "/api/news/unknown"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	deps.News.AssertExpectations(t)
}
