package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/pasarela/internal/showroom"
)

// NewRouter creates a chi router with the runway and admin routes. Every
// route answers 503 until the catalog has loaded. events, if non-nil, is
// mounted at GET /events outside that guard.
func NewRouter(svc *showroom.Service, events http.Handler) chi.Router {
	h := NewHandler(svc)
	ih := NewImageHandler(svc)

	r := chi.NewRouter()

	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(RequireCatalog(svc))

		// Runway.
		r.Get("/site", h.Site)
		r.Get("/runway", h.Runway)
		r.Get("/runway/{id}", h.Detail)

		// Admin catalog.
		r.Route("/admin", func(r chi.Router) {
			r.Get("/products", h.ListProducts)
			r.Put("/products", h.ImportCatalog)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Get("/editor", h.Editor)
			r.Post("/editor/new", h.NewProduct)
			r.Post("/editor/open/{id}", h.OpenProduct)
			r.Post("/editor/save", h.SaveProduct)

			r.Get("/export", h.ExportCatalog)

			r.Get("/images", ih.List)
			r.Post("/images", ih.Upload)
			r.Get("/images/bundle", ih.Bundle)
			r.Delete("/images/{index}", ih.Unstage)
		})
	})

	return r
}

// NewServer builds the root handler: request middleware, health checks and
// the API under /api.
func NewServer(svc *showroom.Service, events http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		if err := svc.Ready(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/api", NewRouter(svc, events))
	return r
}
