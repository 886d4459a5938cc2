package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/auth"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/project"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/transaction"
)

func New(
	cfg *config.Config,
	projectsV1 *project.Handler,
	accountsV1 *account.Handler,
	transactionsV1 *transaction.Handler,
	matchingV1 *matching.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled() {
			r.Use(auth.Middleware([]byte(cfg.Auth.JWTSecret)))
		}

		r.Route("/projects", func(r chi.Router) {
			r.With(middleware.AllowContentType("application/json")).Group(projectsV1.Routes)

			r.Route("/{projectID}/accounts", accountsV1.Routes)
			r.Route("/{projectID}/transactions", transactionsV1.ProjectRoutes)
			r.Route("/{projectID}/matching", matchingV1.Routes)

			r.Route("/{projectID}/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				exportV1.Routes(r)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})
	})

	return router
}
