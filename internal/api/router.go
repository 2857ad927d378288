package api

import (
	_ "ratefeed/docs"
	"ratefeed/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/api/v1/time", rateHandler.TrustedTime)
	router.Post("/api/v1/rates/refresh", rateHandler.Refresh)
	router.Get("/api/v1/rates/known-codes", rateHandler.GetKnownCodes)
	router.Get("/api/v1/rates/{quote:[A-Za-z0-9]{2,10}}", rateHandler.ListByQuote)
	router.Get("/api/v1/rates/{quote:[A-Za-z0-9]{2,10}}/{base:[A-Za-z0-9]{2,10}}", rateHandler.GetByCodes)
	return router
}
