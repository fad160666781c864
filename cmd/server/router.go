package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/ieop-api/internal/api"
	apiMiddleware "github.com/phrazzld/ieop-api/internal/api/middleware"
	"github.com/phrazzld/ieop-api/internal/api/shared"
)

// codeNotFound is reported for any unmatched route or method.
const codeNotFound = "NOT_FOUND"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewCORSMiddleware(app.config.Server.CORSOrigin))

	healthHandler := api.NewHealthHandler(app.clock)
	productHandler := api.NewProductHandler(app.productService, app.logger)
	clientHandler := api.NewClientHandler(app.clientService, app.logger)
	documentHandler := api.NewDocumentHandler(app.documentService, app.logger)

	r.Get("/health", healthHandler.Health)

	r.Get("/products", productHandler.ListProducts)
	r.Post("/products", productHandler.CreateProduct)

	r.Post("/clients", clientHandler.CreateClient)

	r.Get("/documents", documentHandler.ListDocuments)
	r.Post("/documents", documentHandler.CreateDocument)

	if app.docs != nil {
		r.Get("/openapi.json", app.docs.OpenAPIJSON)
		r.Get("/openapi.yaml", app.docs.OpenAPIYAML)
		r.Get("/docs", app.docs.SwaggerUI)
	}

	if app.config.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	// Unknown paths and unsupported methods share one envelope
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, codeNotFound, shared.WithPath(r.URL.Path))
}
