package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openfma/fma/internal/http/aiadmin"
	"github.com/openfma/fma/internal/http/categorize"
	"github.com/openfma/fma/internal/http/category"
	"github.com/openfma/fma/internal/http/dashboard"
	"github.com/openfma/fma/internal/http/plan"
	"github.com/openfma/fma/internal/http/planfile"
)

func New(
	planV1 *plan.Handler,
	dashboardV1 *dashboard.Handler,
	planfileV1 *planfile.Handler,
	categorizeV1 *categorize.Handler,
	categoryV1 *category.Handler,
	aiV1 *aiadmin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The frontend is a browser app served from its own origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/plan", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			planV1.Routes(r)
		})

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/planfile", planfileV1.Routes)

		r.Route("/categorize", categorizeV1.Routes)

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoryV1.Routes(r)
		})

		r.Route("/ai", aiV1.Routes)
	})

	return router
}
