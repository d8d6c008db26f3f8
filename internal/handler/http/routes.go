package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/status", h.getStatus)
	router.Get("/api/version", h.getVersion)

	router.Get("/api/notifications/{channel}", h.getNotifications)
	router.Delete("/api/notifications/{channel}", h.clearNotifications)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
