package config

import (
	"strings"
	"time"

	"hrdash/internal/errors"

	"github.com/kelseyhightower/envconfig"
)

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `ignored:"true"`
	Data     DataConfig     `ignored:"true"`
	Database DatabaseConfig `ignored:"true"`
	Ops      OpsConfig      `ignored:"true"`
	LogLevel string         `envconfig:"LOG_LEVEL" default:"INFO"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port               string        `envconfig:"PORT" default:"8000"`
	GinMode            string        `envconfig:"GIN_MODE" default:"release"`
	StaticDir          string        `envconfig:"STATIC_DIR"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DataConfig holds dataset source settings
type DataConfig struct {
	Source       string `envconfig:"DATA_SOURCE" default:"file"`
	Path         string `envconfig:"DATA_PATH" default:"data.csv"`
	CacheEnabled bool   `envconfig:"CACHE_ENABLED" default:"false"`
}

// DatabaseConfig holds database connection settings, used when Data.Source is postgres
type DatabaseConfig struct {
	URL   string `envconfig:"DATABASE_URL"`
	Table string `envconfig:"DATABASE_TABLE" default:"employees"`
}

// OpsConfig holds the health/metrics/pprof listener settings
type OpsConfig struct {
	Enabled bool   `envconfig:"OPS_ENABLED" default:"true"`
	Port    string `envconfig:"OPS_PORT" default:"6060"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}
	// Each section is processed on its own so keys stay unprefixed (PORT, not SERVER_PORT).
	sections := []interface{}{&config.Server, &config.Data, &config.Database, &config.Ops, config}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to read environment")
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	config.Data.Source = strings.ToLower(strings.TrimSpace(config.Data.Source))
	switch config.Data.Source {
	case SourceFile:
		if config.Data.Path == "" {
			return errors.ConfigInvalid("DATA_PATH is required when DATA_SOURCE=file")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
		if config.Database.Table == "" {
			return errors.ConfigInvalid("DATABASE_TABLE must not be empty")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be one of file, postgres; got " + config.Data.Source)
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be one of debug, release, test; got " + config.Server.GinMode)
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if config.Ops.Enabled && config.Ops.Port == config.Server.Port {
		return errors.ConfigInvalid("OPS_PORT must differ from PORT")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return errors.ConfigInvalid("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
