/*
Working-Set Tree REST API

This is the REST API for wst, an in-memory working-set tree.

Version: 1.0.0
Host: localhost:8080
BasePath: /api/v1

swagger:meta
*/
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Tehiaohiao/wst/pkg/workingset"
)

// StartServer starts the HTTP server with all routes configured, serving
// tree through a REST API. It blocks until the server exits.
func StartServer(tree *workingset.WorkingSetTree[string], config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(tree, config, metrics)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(traceIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", metrics.InstrumentHandler("GET", "/health", server.handleHealth))

	r.Route("/api/v1", func(r chi.Router) {
		r.Put("/keys/{key}", metrics.InstrumentHandler("PUT", "/api/v1/keys/{key}", server.handlePut))
		r.Get("/keys/{key}", metrics.InstrumentHandler("GET", "/api/v1/keys/{key}", server.handleGet))
		r.Delete("/keys/{key}", metrics.InstrumentHandler("DELETE", "/api/v1/keys/{key}", server.handleDelete))

		r.Get("/tree", metrics.InstrumentHandler("GET", "/api/v1/tree", server.handleTree))
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", config.Port)),
	))

	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting wst REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, r)
}
