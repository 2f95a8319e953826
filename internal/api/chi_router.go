// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hunny0025/Codenova/internal/middleware"
)

// Router wires the handler set to the Chi router with its middleware
// stack.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router; nil middlewareConfig uses the defaults.
func NewRouter(handler *Handler, middlewareConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(middlewareConfig),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler shape.
func chiMiddlewareFn(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddlewareFn(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareFn(middleware.PrometheusMetrics))

		r.Post("/recommend", router.handler.Recommend)
		r.Post("/interactions", router.handler.RecordInteraction)
		r.Post("/mealplan", router.handler.MealPlan)
		r.Post("/grocery", router.handler.Grocery)

		r.Get("/users/{id}/profile", router.handler.GetProfile)
		r.Put("/users/{id}/profile", router.handler.UpdateProfile)

		r.Get("/model/status", router.handler.ModelStatus)
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/model/reload", router.handler.ReloadModel)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
