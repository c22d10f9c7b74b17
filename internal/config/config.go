package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKLISTS_DATABASE_URL or TASKLISTS_AUTH_JWT_SECRET.
const EnvPrefix = "TASKLISTS"

const (
	minSearchLimit = 1
	maxSearchLimit = 50
)

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN). postgres:// URLs use pgdriver,
	// anything else is handed to the SQLite driver.
	DatabaseURL string `mapstructure:"database_url"`

	// Server bind address (host:port)
	ServerAddr string `mapstructure:"server_addr"`

	// Maximum database connection pool size
	MaxDBConnections int `mapstructure:"max_db_connections"`

	// Enable debug logging. Overrides LogLevel.
	Debug bool `mapstructure:"debug"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Auth  AuthConfig  `mapstructure:"auth"`
	Users UsersConfig `mapstructure:"users"`
}

// AuthConfig configures identity token verification and minting.
type AuthConfig struct {
	// JWTSecret is the HS256 key shared by the verifier and `token mint`.
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// UsersConfig configures the user directory.
type UsersConfig struct {
	SearchLimit int `mapstructure:"search_limit"`
}

// ErrMissingJWTSecret is returned by RequireJWTSecret when auth.jwt_secret is unset.
var ErrMissingJWTSecret = errors.New("auth.jwt_secret is required (env: TASKLISTS_AUTH_JWT_SECRET)")

var keys = map[string]any{
	"database_url":       "file:tasklists.db?cache=shared",
	"server_addr":        "localhost:8080",
	"max_db_connections": 25,
	"debug":              false,
	"log_level":          "info",
	"log_format":         "text",
	"auth.jwt_secret":    "",
	"auth.issuer":        "tasklists",
	"auth.token_ttl":     time.Hour,
	"users.search_limit": 10,
}

// Load reads configuration from the global viper instance. Values come from
// (highest first) bound flags, TASKLISTS_ environment variables, a config file
// previously read into viper, and the defaults above.
func Load() (*Config, error) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, value := range keys {
		viper.SetDefault(key, value)
	}

	cfg := &Config{}
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required")
	}
	if cfg.MaxDBConnections <= 0 {
		return nil, fmt.Errorf("max_db_connections must be positive, got %d", cfg.MaxDBConnections)
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth.token_ttl must be positive, got %s", cfg.Auth.TokenTTL)
	}

	if cfg.Users.SearchLimit < minSearchLimit {
		cfg.Users.SearchLimit = minSearchLimit
	}
	if cfg.Users.SearchLimit > maxSearchLimit {
		cfg.Users.SearchLimit = maxSearchLimit
	}

	return cfg, nil
}

// RequireJWTSecret fails when no signing secret is configured. Commands that
// verify or mint identity tokens call it before doing any work.
func (c *Config) RequireJWTSecret() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}
