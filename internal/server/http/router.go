package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter 挂好 /api、/ws 和静态资源；webDir 为空时不挂静态资源
func NewRouter(h *Handler, webDir, mobileDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", h.handlePing)

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", h.handleListGames)
		r.Post("/", h.handleNewGame)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", h.handleState)
			r.Delete("/", h.handleDeleteGame)
			r.Get("/moves", h.handleLegalMoves)
			r.Post("/move", h.handleMove)
			r.Post("/ai", h.handleAIMove)
			r.Get("/log", h.handleLog)
		})
	})

	r.Get("/ws/games/{gameID}", h.handleWS)

	if webDir != "" {
		registerStatic(r, webDir, mobileDir)
	}
	return r
}
