// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; empty until DB is wired.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// RPDisplayName is the relying-party name shown in authenticator prompts (e.g. "Field Attendance").
	RPDisplayName string `mapstructure:"RP_DISPLAY_NAME"`
	// ChallengeTTL is the WebAuthn challenge lifetime (e.g. "10m"). A verify after this window fails.
	ChallengeTTL string `mapstructure:"CHALLENGE_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31) for fallback codes; default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// TokenMinLength is the minimum accepted attendance token length after trimming; default 16.
	TokenMinLength int `mapstructure:"TOKEN_MIN_LENGTH"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint (e.g. http://localhost:4317). Empty disables export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RP_DISPLAY_NAME", "Field Attendance")
	v.SetDefault("CHALLENGE_TTL", "10m")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("TOKEN_MIN_LENGTH", 16)
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.RPDisplayName == "" {
		return nil, errors.New("config: RP_DISPLAY_NAME must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.TokenMinLength <= 0 {
		cfg.TokenMinLength = 16
	}

	return &cfg, nil
}

// ChallengeLifetime parses ChallengeTTL as a time.Duration. Returns 10m if unset or invalid.
func (c *Config) ChallengeLifetime() time.Duration {
	d, err := time.ParseDuration(c.ChallengeTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
