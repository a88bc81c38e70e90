package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port        int    `mapstructure:"PORT"`
	Env         string `mapstructure:"APP_ENV"` // development | production
	APIPrefix   string `mapstructure:"API_PREFIX"`
	ProjectName string `mapstructure:"PROJECT_NAME"`
	Version     string `mapstructure:"VERSION"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database; empty keeps the catalogs in memory
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Solver
	SolverTimeLimitSeconds float64 `mapstructure:"SOLVER_TIME_LIMIT_SECONDS"`
	SolverRelativeGap      float64 `mapstructure:"SOLVER_RELATIVE_GAP"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("PROJECT_NAME", "Denso Transfer Plan Recommendation System")
	v.SetDefault("VERSION", "1.0.0")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080,http://localhost:5500,http://localhost:5501")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SOLVER_TIME_LIMIT_SECONDS", 10)
	v.SetDefault("SOLVER_RELATIVE_GAP", 0.01)
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	// Optional .env file for local development
	_ = v.ReadInConfig()

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be within 1-65535, got %d", c.Port)
	}
	if c.SolverTimeLimitSeconds <= 0 {
		return fmt.Errorf("SOLVER_TIME_LIMIT_SECONDS must be positive, got %g", c.SolverTimeLimitSeconds)
	}
	if c.SolverRelativeGap < 0 {
		return fmt.Errorf("SOLVER_RELATIVE_GAP cannot be negative, got %g", c.SolverRelativeGap)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// IsProduction reports whether APP_ENV selects production behaviour
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// AllowedOrigins splits CORS_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// SolverTimeLimit converts SOLVER_TIME_LIMIT_SECONDS to a duration
func (c *Config) SolverTimeLimit() time.Duration {
	return time.Duration(c.SolverTimeLimitSeconds * float64(time.Second))
}

// Level is the parsed LOG_LEVEL, info when unparseable
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}
