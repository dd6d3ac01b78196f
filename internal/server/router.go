package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mpetrov/code-critic/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and the
// application routes. Each request handler blocks on its own remote model
// call; the timeout middleware is the only cap on how long that may take.
func NewRouter(pages *handler.PageHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/health", pages.Health)

	r.Get("/", pages.Home)
	r.Post("/reviews", pages.SubmitReview)
	r.Get("/reviews/{id}", pages.ReviewDetail)
	r.Get("/history", pages.History)
	r.Get("/chat", pages.ChatPage)
	r.Post("/chat", pages.ChatSubmit)

	return r
}
