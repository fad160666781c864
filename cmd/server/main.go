// Package main implements the entry point for the IEOP API server, a
// backend-for-frontend that exposes the Vendus product catalog, client
// registration and invoicing behind a small JSON API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
)

// main is the entry point for the ieop-api server.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Server terminated: %v", err)
	}
}

// run loads configuration, sets up logging, wires the application and blocks
// until the HTTP server shuts down.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"env", cfg.Server.Env,
		"log_level", cfg.Server.LogLevel,
		"vendus_base_url", cfg.Vendus.BaseURL)

	if cfg.Vendus.APIKey == "" {
		slog.Warn("VENDUS_API_KEY is not set; upstream operations will fail with CONFIG_MISSING")
	}
	if cfg.Vendus.RegisterID == "" {
		slog.Warn("VENDUS_REGISTER_ID is not set; document creation will fail with CONFIG_MISSING")
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
