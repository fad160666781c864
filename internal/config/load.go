package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when the matching environment variable is unset or empty.
const (
	DefaultPort            = 3000
	DefaultEnv             = "development"
	DefaultLogLevel        = "info"
	DefaultCORSOrigin      = "*"
	DefaultVendusBaseURL   = "https://www.vendus.pt/ws/v1.1"
	DefaultVendusTimeout   = 10 * time.Second
	DefaultPaymentMethodID = 295779699
)

// envBindings maps configuration keys to the environment variables that set
// them, in precedence order.
var envBindings = map[string][]string{
	"server.port":              {"PORT"},
	"server.env":               {"APP_ENV", "NODE_ENV"},
	"server.log_level":         {"LOG_LEVEL"},
	"server.cors_origin":       {"CORS_ORIGIN"},
	"vendus.base_url":          {"VENDUS_BASE_URL"},
	"vendus.api_key":           {"VENDUS_API_KEY"},
	"vendus.register_id":       {"VENDUS_REGISTER_ID"},
	"vendus.payment_method_id": {"VENDUS_PAYMENT_METHOD_ID"},
	"vendus.timeout":           {"VENDUS_TIMEOUT"},
	"docs.enabled":             {"SWAGGER_ENABLED"},
	"docs.server_url":          {"SWAGGER_SERVER_URL"},
	"metrics.enabled":          {"METRICS_ENABLED"},
}

// flagKeys are boolean settings that accept 1/true/yes/y/on as true.
var flagKeys = []string{"docs.enabled", "metrics.enabled"}

// Load configuration from environment variables, after loading an optional
// .env file from the working directory. Variables already set in the process
// environment take precedence over the .env file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.env", DefaultEnv)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.cors_origin", DefaultCORSOrigin)
	v.SetDefault("vendus.base_url", DefaultVendusBaseURL)
	v.SetDefault("vendus.api_key", "")
	v.SetDefault("vendus.register_id", "")
	v.SetDefault("vendus.payment_method_id", DefaultPaymentMethodID)
	v.SetDefault("vendus.timeout", DefaultVendusTimeout)
	v.SetDefault("docs.enabled", true)
	v.SetDefault("docs.server_url", "")
	v.SetDefault("metrics.enabled", true)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	for _, key := range flagKeys {
		v.Set(key, parseFlag(v.GetString(key)))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	cfg.Vendus.APIKey = strings.TrimSpace(cfg.Vendus.APIKey)
	cfg.Vendus.RegisterID = strings.TrimSpace(cfg.Vendus.RegisterID)
	if cfg.Docs.ServerURL == "" {
		cfg.Docs.ServerURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
