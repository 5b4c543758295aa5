// filepath: internal/api/router.go
package api

import (
	"net/http"
	"path/filepath"

	"inkhub/internal/api/handlers"
	"inkhub/internal/config"
	"inkhub/internal/services"
	"inkhub/internal/services/auth"
	"inkhub/internal/storage"
	"inkhub/internal/web"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the main router and its sub-routers.
// It sets up API endpoints, authentication, stored media and the frontend server.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	})
	apiRouter.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	addPublicRoutes(apiRouter, h)
	addAdminRoutes(apiRouter, h, am)

	// Stored media (public, no directory listing)
	addStorageRoutes(r, cfg.Storage.Root)

	// Frontend web server (public)
	if cfg.Server.WebRoot != "" {
		web.AddRoutes(r, cfg.Server.WebRoot, "index.html")
	}

	return r
}

// addPublicRoutes configures routes that need no token.
func addPublicRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/info", h.GetInfo).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/login/refresh-token", h.RefreshToken).Methods("POST")

	r.HandleFunc("/media", h.ListMedia).Methods("GET")
	r.HandleFunc("/media/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/news", h.ListNews).Methods("GET")
	r.HandleFunc("/visits", h.RecordVisit).Methods("POST")
}

// addAdminRoutes configures routes for the admin area.
func addAdminRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	adminRouter := r.PathPrefix("").Subrouter()
	adminRouter.Use(am.RequireAdmin)

	adminRouter.HandleFunc("/upload", h.UploadMedia).Methods("POST")
	adminRouter.HandleFunc("/media/upload", h.UploadMedia).Methods("POST")
	adminRouter.HandleFunc("/media/{category}/{filename}", h.DeleteMedia).Methods("DELETE")

	adminRouter.HandleFunc("/news", h.CreateNews).Methods("POST")
	adminRouter.HandleFunc("/news/{id}", h.DeleteNews).Methods("DELETE")

	adminRouter.HandleFunc("/visits/stats", h.VisitStats).Methods("GET")
	adminRouter.HandleFunc("/admin/housekeeping", h.TriggerHousekeeping).Methods("POST")
}

// addStorageRoutes serves stored files and thumbnails straight from disk.
func addStorageRoutes(r *mux.Router, root string) {
	uploads := http.StripPrefix(services.UploadsURLPrefix+"/", http.FileServer(storageFS{http.Dir(root)}))
	r.PathPrefix(services.UploadsURLPrefix + "/").Handler(uploads).Methods("GET", "HEAD")

	thumbs := http.StripPrefix(services.ThumbsURLPrefix+"/", http.FileServer(storageFS{http.Dir(filepath.Join(root, storage.ThumbsDirName))}))
	r.PathPrefix(services.ThumbsURLPrefix + "/").Handler(thumbs).Methods("GET", "HEAD")
}
