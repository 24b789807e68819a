// Package config handles loading and validation of application configuration
// from environment variables and potentially configuration files.
package config

import (
	"fmt"
	"net/url"

	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely (safe default).
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// ProdbxConfig holds settings for the ProDBX contract/addendum hosting service.
type ProdbxConfig struct {
	// Host is the hostname addendum links must match (e.g. l1.prodbx.com).
	Host string `mapstructure:"HOST" yaml:"host"`
	// FetchTimeoutSeconds is the client-side timeout for fetching a hosted page.
	FetchTimeoutSeconds int `mapstructure:"FETCH_TIMEOUT_SECONDS" yaml:"fetch_timeout_seconds"`
	// MaxParallelFetches bounds concurrent addendum page fetches per email.
	MaxParallelFetches int `mapstructure:"MAX_PARALLEL_FETCHES" yaml:"max_parallel_fetches"`
}

// EmailConfig holds configuration for sending operator digest emails.
type EmailConfig struct {
	Enabled         bool   `mapstructure:"ENABLED" yaml:"enabled"`
	FromAddress     string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName        string `mapstructure:"FROM_NAME" yaml:"from_name"`
	DigestRecipient string `mapstructure:"DIGEST_RECIPIENT" yaml:"digest_recipient"`
	ResendAPIKey    string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// WorkerPoolConfig holds configuration for the addendum fetch worker pool.
type WorkerPoolConfig struct {
	// MaxWorkers is the number of concurrent workers (default: 10)
	MaxWorkers int `mapstructure:"MAX_WORKERS" yaml:"max_workers"`
	// QueueSize is the maximum number of pending jobs (default: 1000)
	QueueSize int `mapstructure:"QUEUE_SIZE" yaml:"queue_size"`
	// ShutdownTimeoutSeconds is the max time to wait for workers during shutdown (default: 30)
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server     ServerConfig     `mapstructure:"SERVER" yaml:"server"`
	Prodbx     ProdbxConfig     `mapstructure:"PRODBX" yaml:"prodbx"`
	Email      EmailConfig      `mapstructure:"EMAIL" yaml:"email"`
	WorkerPool WorkerPoolConfig `mapstructure:"WORKER_POOL" yaml:"worker_pool"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{}) // Empty = trust no one (safe default)
	v.SetDefault("PRODBX.HOST", "l1.prodbx.com")
	v.SetDefault("PRODBX.FETCH_TIMEOUT_SECONDS", 15)
	v.SetDefault("PRODBX.MAX_PARALLEL_FETCHES", 4)
	v.SetDefault("EMAIL.ENABLED", false)
	v.SetDefault("EMAIL.FROM_NAME", "AquaBuilt Billing")
	v.SetDefault("WORKER_POOL.MAX_WORKERS", 10)
	v.SetDefault("WORKER_POOL.QUEUE_SIZE", 1000)
	v.SetDefault("WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", 30)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		// ProDBX config
		{"PRODBX.HOST", "PRODBX_HOST"},
		{"PRODBX.FETCH_TIMEOUT_SECONDS", "PRODBX_FETCH_TIMEOUT_SECONDS"},
		{"PRODBX.MAX_PARALLEL_FETCHES", "PRODBX_MAX_PARALLEL_FETCHES"},
		// Email config
		{"EMAIL.ENABLED", "EMAIL_ENABLED"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.DIGEST_RECIPIENT", "EMAIL_DIGEST_RECIPIENT"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		// WorkerPool config
		{"WORKER_POOL.MAX_WORKERS", "WORKER_POOL_MAX_WORKERS"},
		{"WORKER_POOL.QUEUE_SIZE", "WORKER_POOL_QUEUE_SIZE"},
		{"WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", "WORKER_POOL_SHUTDOWN_TIMEOUT_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"prodbx_host", v.GetString("PRODBX.HOST"),
		"prodbx_fetch_timeout", v.GetInt("PRODBX.FETCH_TIMEOUT_SECONDS"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if cfg.Prodbx.Host == "" {
		return fmt.Errorf("prodbx host is required")
	}
	if cfg.Prodbx.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("prodbx fetch timeout must be positive")
	}
	if cfg.Prodbx.MaxParallelFetches <= 0 {
		return fmt.Errorf("prodbx max parallel fetches must be positive")
	}

	// Validate AllowedOrigins format if not wildcard
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Email.Enabled {
		if cfg.Email.ResendAPIKey == "" {
			return fmt.Errorf("resend API key is required when email is enabled")
		}
		if cfg.Email.FromAddress == "" || cfg.Email.DigestRecipient == "" {
			return fmt.Errorf("email from address and digest recipient are required when email is enabled")
		}
	}

	if cfg.WorkerPool.MaxWorkers <= 0 || cfg.WorkerPool.QueueSize <= 0 {
		return fmt.Errorf("worker pool max workers and queue size must be positive")
	}

	return nil
}

// containsWildcard reports whether the origin list allows any origin.
func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
