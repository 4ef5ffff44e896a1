package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the game endpoints onto a chi router.
func NewRouter(logger *slog.Logger, gameplay gamePlayService) *chi.Mux {
	handlers := NewHandlers(logger, gameplay)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", handlers.Ping)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", handlers.CreateGame)
		r.Get("/", handlers.ListGames)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", handlers.GetGame)
			r.Get("/history", handlers.GetHistory)
			r.Post("/move", handlers.MakeMove)
			r.Post("/ai-move", handlers.MakeBotMove)
		})
	})

	return router
}

func Start(logger *slog.Logger, port string, gameplay gamePlayService) error {
	router := NewRouter(logger, gameplay)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
