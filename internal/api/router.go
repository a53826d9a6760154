package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Session-scoped pages
	r.Group(func(r chi.Router) {
		r.Use(apiHandler.SessionMiddleware)

		r.Get("/", apiHandler.HomeHandler)
		r.Post("/", apiHandler.PostMessageHandler)
		r.Post("/clear_chat", apiHandler.ClearChatHandler)
		r.Get("/egzersizler", apiHandler.ExerciseListHandler)
		r.Get("/about", apiHandler.AboutHandler)
		r.Get("/set_language/{code}", apiHandler.SetLanguageHandler)
	})

	return r
}
