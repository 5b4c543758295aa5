// filepath: internal/api/handlers/news_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/gorilla/mux"
)

// @Summary List news
// @Description List news posts in insertion order, or newest first with order=desc.
// @Tags News
// @Produce  json
// @Param   order  query  string  false  "asc (default) or desc"
// @Success 200 {array} models.NewsItem
// @Failure 400 {object} ErrorResponse "Invalid order"
// @Failure 500 {object} ErrorResponse "Listing failed"
// @Router /news [get]
func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	order, err := services.ParseNewsOrder(r.URL.Query().Get("order"))
	if err != nil {
		respondWithServiceError(w, err, "Listing")
		return
	}

	items, err := h.News.List(r.Context(), order)
	if err != nil {
		respondWithServiceError(w, err, "Listing")
		return
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// @Summary Create news
// @Description Publish a news post. A non-empty title is required.
// @Tags News
// @Accept   json
// @Produce  json
// @Param   news  body  models.NewsCreatePayload  true  "News post"
// @Success 201 {object} models.NewsItem
// @Failure 400 {object} ErrorResponse "Invalid request body or missing title"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Create failed"
// @Security BearerAuth
// @Router /news [post]
func (h *Handlers) CreateNews(w http.ResponseWriter, r *http.Request) {
	var payload models.NewsCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.News.Add(r.Context(), payload)
	if err != nil {
		respondWithServiceError(w, err, "Create")
		return
	}

	h.audit(r, "news.create", "news:"+item.ID, map[string]interface{}{"title": item.Title})
	respondWithJSON(w, http.StatusCreated, item)
}

// @Summary Delete news
// @Description Remove a news post. Unknown IDs succeed.
// @Tags News
// @Param   id  path  string  true  "News ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Delete failed"
// @Security BearerAuth
// @Router /news/{id} [delete]
func (h *Handlers) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.News.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "Delete")
		return
	}

	h.audit(r, "news.delete", "news:"+id, nil)
	w.WriteHeader(http.StatusNoContent)
}
