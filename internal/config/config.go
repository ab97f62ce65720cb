package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	Database DatabaseConfig
	Uploads  UploadConfig
	Logging  LoggingConfig
}

// DatabaseConfig describes the relational store.
type DatabaseConfig struct {
	// URL is a postgres:// DSN or a sqlite file path (":memory:" allowed).
	URL   string
	Debug bool
}

// Driver reports which gorm dialector URL selects.
func (c DatabaseConfig) Driver() string {
	if strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://") ||
		strings.Contains(c.URL, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// UploadConfig locates property image files.
type UploadConfig struct {
	Dir       string
	URLPrefix string
}

// LoggingConfig controls logger construction.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultDatabaseURL     = "tenancy.db"
	defaultUploadDir       = "uploads"
	defaultUploadURLPrefix = "/uploads"
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
)

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Database: DatabaseConfig{
			URL:   valueOrDefault("TENANCY_DATABASE_URL", valueOrDefault("DATABASE_URL", defaultDatabaseURL)),
			Debug: parseBoolWithDefault("TENANCY_DB_DEBUG", false),
		},
		Uploads: UploadConfig{
			Dir:       valueOrDefault("TENANCY_UPLOAD_DIR", defaultUploadDir),
			URLPrefix: valueOrDefault("TENANCY_UPLOAD_URL_PREFIX", defaultUploadURLPrefix),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("TENANCY_LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("TENANCY_LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("TENANCY_LOG_INCLUDE_CALLER", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the module cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Uploads.Dir) == "" {
		return fmt.Errorf("TENANCY_UPLOAD_DIR must not be empty")
	}
	if !strings.HasPrefix(c.Uploads.URLPrefix, "/") {
		return fmt.Errorf("TENANCY_UPLOAD_URL_PREFIX must start with '/', got %q", c.Uploads.URLPrefix)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid TENANCY_LOG_FORMAT %q", c.Logging.Format)
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}
