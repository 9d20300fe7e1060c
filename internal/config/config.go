// Package config manages environment variables.
//
// It reads OBO_-prefixed variables (optionally from a `.env` file),
// maps them into structured Go types, applies the defaults the service
// shipped with historically, and validates the result so the process
// fails fast on bad configuration.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process
	// environment before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variable names before they are
// mapped onto koanf keys. OBO_DATABASE_HOST becomes "database.host".
const envPrefix = "OBO_"

// Config is the root configuration object for the service.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeout values are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// LoggingConfig controls structured logger behavior.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// URL, when set, is a complete connection string that overrides all of
// the individual host/port/user/password/name/ssl fields.
type DatabaseConfig struct {
	URL          string `koanf:"url"`
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password" validate:"required"`
	Name         string `koanf:"name" validate:"required"`
	SSLMode      string `koanf:"ssl_mode" validate:"required"`
	MinConns     int    `koanf:"min_conns" validate:"required,min=1"`
	MaxConns     int    `koanf:"max_conns" validate:"required,min=1"`
	QueryTimeout int    `koanf:"query_timeout" validate:"min=0"` // seconds; 0 disables
	Migrate      bool   `koanf:"migrate"`
}

// RedisConfig contains the optional cache connection details.
// An empty Address disables caching entirely.
type RedisConfig struct {
	Address  string `koanf:"address"`
	CacheTTL int    `koanf:"cache_ttl" validate:"min=0"` // seconds
}

// DSN returns the PostgreSQL connection string. A configured URL wins;
// otherwise the string is composed from the individual fields with the
// password URL-escaped so special characters survive.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	hostPort := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		url.QueryEscape(c.Password),
		hostPort,
		c.Name,
		c.SSLMode,
	)
}

// defaultConfig returns the configuration the service runs with when no
// environment is provided: local Postgres, a pool of 2-10 connections,
// listening on port 9810.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "9810",
			ReadTimeout:        15,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Password:     "postgres",
			Name:         "obo",
			SSLMode:      "disable",
			MinConns:     2,
			MaxConns:     10,
			QueryTimeout: 30,
			Migrate:      true,
		},
		Redis: RedisConfig{
			CacheTTL: 60,
		},
	}
}

// Load reads configuration from the environment on top of the defaults,
// validates it, and returns the resulting config.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Env var names use a flat OBO_SECTION_FIELD convention. Only the
	// first underscore after the prefix separates the section from the
	// field, so OBO_DATABASE_SSL_MODE maps to "database.ssl_mode".
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	// Unmarshalling into a pre-populated struct keeps the default for
	// every key the environment does not mention.
	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
