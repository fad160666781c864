package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ieop-api/internal/api/docs"
	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/phrazzld/ieop-api/internal/platform/metrics"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
	"github.com/phrazzld/ieop-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	metrics *metrics.Metrics
	vendus  *vendus.Client
	clock   func() time.Time

	// Service interfaces
	productService  service.ProductService
	clientService   service.ClientService
	documentService service.DocumentService

	// Event system
	eventBus *events.Bus

	// API documentation, nil when disabled
	docs *docs.Handler
}

// newApplication creates a new application instance with all dependencies initialized.
// Missing Vendus credentials do not fail initialization.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
		clock:   time.Now,
	}

	app.vendus = vendus.NewClient(cfg.Vendus, logger, vendus.WithRecorder(app.metrics))
	logger.Info("Vendus client initialized",
		"configured", app.vendus.Configured(),
		"timeout", cfg.Vendus.Timeout.String())

	// Every upstream write is recorded as an audit event
	app.eventBus = events.NewBus(logger)
	app.eventBus.Subscribe(events.NewLogHandler(logger))

	references, err := service.NewReferenceGenerator(app.vendus, app.clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reference generator: %w", err)
	}

	app.productService, err = service.NewProductService(app.vendus, references, app.eventBus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	app.clientService, err = service.NewClientService(app.vendus, app.eventBus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}

	app.documentService, err = service.NewDocumentService(app.vendus, cfg.Vendus, app.eventBus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}

	if cfg.Docs.Enabled {
		app.docs, err = docs.NewHandler(cfg.Docs.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load API documentation: %w", err)
		}
	}

	logger.Info("Application initialized successfully",
		"docs_enabled", cfg.Docs.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
