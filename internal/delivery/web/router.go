package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every route of the HTTP adapter.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/levels", h.ListLevels)
		r.Get("/particles.svg", h.ParticlesSVG)

		r.Route("/quiz/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Post("/{id}/{action}", h.SessionAction)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.ListCards)
			r.Get("/random", h.RandomCard)
			r.Get("/search", h.SearchCards)
			r.Get("/{index}", h.GetCard)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", h.GetPreferences)
			r.Post("/theme", h.ToggleTheme)
			r.Get("/bookmarks", h.ListBookmarks)
			r.Post("/bookmarks/{index}", h.ToggleBookmark)
			r.Get("/achievements", h.ListAchievements)
		})
	})

	r.Route("/ws", func(r chi.Router) {
		r.Get("/particles", h.ParticlesStream)
		r.Get("/quiz/{id}", h.QuizStream)
	})

	return r
}
