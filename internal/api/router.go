package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kinoflow/kinoflow/internal/middleware"
	"github.com/kinoflow/kinoflow/internal/service"
)

// chiMiddleware adapts our func(http.HandlerFunc) http.HandlerFunc
// middleware to chi's func(http.Handler) http.Handler, mirroring the
// teacher's own adapter of the same name.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// NewRouter builds the chi.Router serving every C11 endpoint in spec.md
// §6 over the Film/Genre/Person services.
func NewRouter(films *service.FilmService, genres *service.GenreService, persons *service.PersonService) http.Handler {
	filmHandler := NewFilmHandler(films)
	genreHandler := NewGenreHandler(genres)
	personHandler := NewPersonHandler(persons, films)

	r := chi.NewRouter()
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.Get("/healthz", Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/films", func(r chi.Router) {
			r.Get("/", filmHandler.List)
			r.Get("/search", filmHandler.Search)
			r.Get("/{id}", filmHandler.Get)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genreHandler.List)
			r.Get("/{id}", genreHandler.Get)
		})

		r.Route("/persons", func(r chi.Router) {
			r.Get("/search", personHandler.Search)
			r.Get("/{id}", personHandler.Get)
			r.Get("/{id}/films", personHandler.Films)
		})
	})

	return r
}

// Health answers liveness probes; the Query API has no deep dependency
// check here, since cache/search degrade to miss/error per-request
// rather than taking the whole process down.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
