package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	IdentityModeJWT    = "jwt"
	IdentityModeHeader = "header"

	Production = "production"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `env:"CUSTODY_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	MetricsPath    string        `env:"METRICS_PATH" envDefault:"/metrics"`
}

// Database configures the relational store and the permission store pool.
type Database struct {
	URL             string        `env:"DATABASE_URL"`
	PermissionsURL  string        `env:"PERMISSIONS_DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	TxTimeout       time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
}

// RedisConfig configures the optional reference-dictionary cache.
// An empty URL selects the in-process cache.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	ReferenceTTL time.Duration `env:"REFERENCE_CACHE_TTL" envDefault:"5m"`
}

// Identity selects how the acting user is resolved per request.
type Identity struct {
	Mode          string `env:"IDENTITY_MODE" envDefault:"jwt"`
	JWTSigningKey string `env:"JWT_SIGNING_KEY"`
	JWTIssuer     string `env:"JWT_ISSUER"`
	JWTAudience   string `env:"JWT_AUDIENCE"`
	ActorHeader   string `env:"ACTOR_HEADER" envDefault:"X-Actor-ID"`
}

// Telemetry configures trace export. An empty endpoint keeps spans in process.
type Telemetry struct {
	ServiceName  string  `env:"OTEL_SERVICE_NAME" envDefault:"custody"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure     bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio  float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`
}

type Logging struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Config struct {
	Server      Server
	Database    Database
	Redis       RedisConfig
	Identity    Identity
	Logging     Logging
	Telemetry   Telemetry
	Environment string `env:"APP_ENV" envDefault:"development"`
}

// Load reads the optional env files, then parses the environment.
// Missing env files are skipped.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Database.PermissionsURL == "" {
		cfg.Database.PermissionsURL = cfg.Database.URL
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	// godotenv.Load never overrides variables already set in the process.
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.Identity.Mode {
	case IdentityModeJWT:
		if c.Identity.JWTSigningKey == "" {
			errs = append(errs, errors.New("JWT_SIGNING_KEY is required when IDENTITY_MODE=jwt"))
		}
	case IdentityModeHeader:
		if c.Identity.ActorHeader == "" {
			errs = append(errs, errors.New("ACTOR_HEADER cannot be empty when IDENTITY_MODE=header"))
		}
		if c.Environment == Production {
			errs = append(errs, errors.New("IDENTITY_MODE=header is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_MODE must be %q or %q, got %q", IdentityModeJWT, IdentityModeHeader, c.Identity.Mode))
	}
	if c.Database.TxTimeout <= 0 {
		errs = append(errs, errors.New("TX_TIMEOUT must be positive"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, errors.New("OTEL_TRACES_SAMPLE_RATIO must be between 0 and 1"))
	}
	if c.Redis.ReferenceTTL <= 0 {
		errs = append(errs, errors.New("REFERENCE_CACHE_TTL must be positive"))
	}
	return errors.Join(errs...)
}
