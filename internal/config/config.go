package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the greenspace point service.
// Environment variables are automatically parsed from the GREENSPACE_ prefix.
type Config struct {
	// Build target selects the high-level environment: local, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SQLite Configuration (local target)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/greenspace.db"`

	// Postgres Configuration (cloud target)
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Photo host (imgbb-compatible upload API)
	PhotoHostURL string `envconfig:"PHOTO_HOST_URL" default:"https://api.imgbb.com"`
	PhotoHostKey string `envconfig:"PHOTO_HOST_KEY" default:""`

	// Chat assistant (generative-text API)
	ChatAPIURL string `envconfig:"CHAT_API_URL" default:"https://generativelanguage.googleapis.com"`
	ChatAPIKey string `envconfig:"CHAT_API_KEY" default:""`

	// Vegetation analysis app (opaque external web application)
	VegetationAppURL string `envconfig:"VEGETATION_APP_URL" default:"https://ee-rifdanajlaazzahra.projects.earthengine.app/view/grest"`
	VegetationPct    int    `envconfig:"VEGETATION_PCT" default:"69"`

	// Default map region used when a create form resets
	DefaultRegion string `envconfig:"DEFAULT_REGION" default:"-7.7956,110.3695"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.VegetationPct < 0 || c.VegetationPct > 100 {
		return fmt.Errorf("VEGETATION_PCT must be 0-100, got %d", c.VegetationPct)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with GREENSPACE_
// Example: GREENSPACE_HTTP_PORT, GREENSPACE_SQLITE_PATH
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("GREENSPACE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("photo_host", cfg.PhotoHostURL).
		Str("chat_api", cfg.ChatAPIURL).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:      "local",
		DBDriver:         "sqlite",
		Environment:      EnvTesting,
		HTTPPort:         8080,
		SQLitePath:       ":memory:",
		PhotoHostURL:     "http://localhost:0",
		ChatAPIURL:       "http://localhost:0",
		VegetationAppURL: "http://localhost:0",
		VegetationPct:    69,
		DefaultRegion:    "-7.7956,110.3695",

		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
