/*
Package configs loads the relay server's settings.

Values come from the process environment, optionally seeded from a .env file,
and are validated before the server starts: the running environment, the
listen port, websocket origins, the static asset directory, the profanity word
list, and the per-connection send buffer size.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

const (
	// EnvDevelopment relaxes origin checks and enables console logging.
	EnvDevelopment = "development"

	// EnvProduction enforces ALLOWED_ORIGINS and logs JSON.
	EnvProduction = "production"
)

// AppConfig contains every setting the relay needs at runtime.
type AppConfig struct {
	// General Server Settings
	Environment string `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development production"`
	Port        int    `envconfig:"PORT" default:"8080" validate:"min=1024,max=65535"`

	// PublicDir is served at / when set.
	PublicDir string `envconfig:"PUBLIC_DIR" validate:"omitempty,dir"`

	// Security Settings
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	// Chat Settings
	ProfanityWords []string `envconfig:"PROFANITY_WORDS"`
	SendBufferSize int      `envconfig:"SEND_BUFFER_SIZE" default:"256" validate:"min=1,max=65536"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// LoadConfig reads the configuration from the environment.
// envFiles are loaded first without overriding variables already set; when none
// are given, a .env file in the working directory is used if it exists.
func LoadConfig(envFiles ...string) (*AppConfig, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	cfg.AllowedOrigins = cleanList(cfg.AllowedOrigins)
	cfg.ProfanityWords = cleanList(cfg.ProfanityWords)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if !cfg.IsDevelopment() && len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS environment variable is required in %s environment", cfg.Environment)
	}

	return cfg, nil
}

func loadEnvFiles(envFiles []string) error {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return fmt.Errorf("failed to load env files %v: %w", envFiles, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// cleanList trims every entry of a CSV-decoded list and drops the empty ones.
func cleanList(values []string) []string {
	return lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	}))
}
