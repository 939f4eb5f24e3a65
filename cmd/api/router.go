package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/josh-kwaku/splitledger/internal/handler"
	"github.com/josh-kwaku/splitledger/internal/middleware"
	"github.com/josh-kwaku/splitledger/internal/repository"
)

type routerDeps struct {
	jwtSecret   string
	registry    *prometheus.Registry
	idempotency *repository.IdempotencyRepository

	auth        *handler.AuthHandler
	groups      *handler.GroupHandler
	expenses    *handler.ExpenseHandler
	settlements *handler.SettlementHandler
	reports     *handler.ReportHandler
	health      *handler.HealthHandler
	spec        []byte
}

func newRouter(d routerDeps) http.Handler {
	metrics := middleware.NewMetrics(d.registry)

	r := chi.NewRouter()
	r.Use(middleware.Tracing, middleware.Logging, middleware.Recovery, metrics.Handler)

	r.Get("/health/live", d.health.Liveness)
	r.Get("/health/ready", d.health.Readiness)
	r.Get("/docs", handler.ServeDocs())
	r.Get("/docs/openapi.yaml", handler.ServeSpec(d.spec))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{Registry: d.registry}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", d.auth.Register)
		r.Post("/auth/login", d.auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.jwtSecret), middleware.Idempotency(d.idempotency))

			r.Get("/users/me", d.auth.Me)
			r.Get("/users/{userID}/owe-details", d.reports.OweDetails)

			r.Post("/groups", d.groups.Create)
			r.Get("/groups/{groupID}", d.groups.Get)
			r.Get("/groups/{groupID}/expenses", d.expenses.ListByGroup)

			r.Post("/expenses", d.expenses.Create)
			r.Get("/expenses/{expenseID}", d.expenses.Get)

			r.Post("/settlements", d.settlements.SettleUp)
		})
	})

	return r
}
