package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BuzzLyutic/task-board/pkg/respond"
)

// Health reports "degraded" while the task mirror has unflushed changes.
func Health(dirty func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if dirty != nil && dirty() {
			status = "degraded"
		}
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": status})
	}
}

func NewRouter(api *TaskHandler, ui *UIHandler, health http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", health)

	r.Get("/", ui.Board)
	r.Get("/export.pdf", ui.ExportPDF)
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", ui.Submit)
		r.Post("/{id}/edit", ui.Edit)
		r.Post("/{id}/status", ui.SetStatus)
		r.Get("/{id}/delete", ui.ConfirmDelete)
		r.Post("/{id}/delete", ui.Delete)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", api.Create)
		r.Get("/", api.List)
		r.Get("/{id}", api.Get)
		r.Put("/{id}", api.Update)
		r.Patch("/{id}/status", api.SetStatus)
		r.Delete("/{id}", api.Delete)
	})
	r.Get("/api/stats", api.Stats)

	return r
}
