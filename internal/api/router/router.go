// Package router wires the HTTP endpoints to their handlers.
package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/confguard/confguard/internal/api/handlers"
	"github.com/confguard/confguard/internal/api/middleware"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/metrics"
)

// Deps carries everything the router mounts
type Deps struct {
	Baselines  *handlers.BaselineHandler
	Proposals  *handlers.ProposalHandler
	Deviations *handlers.DeviationHandler
	Health     *handlers.HealthHandler
	Logger     *logger.Logger
	RateLimit  *middleware.RateLimiter
	CORSOrigin []string
}

// New builds the service router. Core routes are mounted at the root
// and aliased under /api/v1 so both path styles keep working.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.CORS(d.CORSOrigin))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Middleware)
	}
	r.Use(metrics.Middleware)
	r.Use(middleware.Actor)

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	r.Method("GET", "/metrics", metrics.Handler())

	mountCore(r, d)
	r.Route("/api/v1", func(api chi.Router) {
		mountCore(api, d)
	})

	return r
}

func mountCore(r chi.Router, d Deps) {
	r.Route("/devices/{deviceID}", func(r chi.Router) {
		r.Get("/baseline", d.Baselines.Get)
		r.Get("/baseline/history", d.Baselines.History)
		r.Get("/deviations", d.Deviations.List)
		r.Get("/ignores", d.Deviations.ListIgnores)
		r.Post("/snapshots", d.Deviations.RecordSnapshot)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireActor)
			r.Post("/baseline/proposals", d.Proposals.Create)
			r.Post("/ignores", d.Deviations.AddIgnore)
		})
	})

	r.Route("/baseline/proposals", func(r chi.Router) {
		r.Get("/", d.Proposals.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireActor)
			r.Put("/{id}", d.Proposals.Decide)
		})
	})
}
