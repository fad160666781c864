package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Vendus  VendusConfig  `mapstructure:"vendus" validate:"required"`
	Docs    DocsConfig    `mapstructure:"docs"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port       int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	Env        string `mapstructure:"env" validate:"required"`
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSOrigin string `mapstructure:"cors_origin" validate:"required"`
}

// VendusConfig contains the upstream API settings.
// APIKey and RegisterID may be empty: operations that need them fail with a
// configuration error instead of preventing startup.
type VendusConfig struct {
	BaseURL         string        `mapstructure:"base_url" validate:"required,url"`
	APIKey          string        `mapstructure:"api_key"`
	RegisterID      string        `mapstructure:"register_id"`
	PaymentMethodID int64         `mapstructure:"payment_method_id" validate:"gt=0"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DocsConfig controls the OpenAPI document and the Swagger UI page.
type DocsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	ServerURL string `mapstructure:"server_url" validate:"omitempty,url"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
