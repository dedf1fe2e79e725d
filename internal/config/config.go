// Package config handles application configuration from a YAML file, .env and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/randytsao24/experienceintel/internal/predict"
)

// Config holds all application configuration.
type Config struct {
	Port           string
	Env            string
	ModelDir       string
	AssetsDir      string
	CacheTTL       time.Duration
	HTTPTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string
	Artifacts      predict.Names
}

// fileConfig is the YAML layout read from CONFIG_FILE. Empty strings and
// absent numbers leave defaults in place; an explicit 0 is kept.
type fileConfig struct {
	Port               string        `yaml:"port"`
	Env                string        `yaml:"env"`
	ModelDir           string        `yaml:"model_dir"`
	AssetsDir          string        `yaml:"assets_dir"`
	CacheTTLSeconds    *int          `yaml:"cache_ttl_seconds"`
	HTTPTimeoutSeconds *int          `yaml:"http_timeout_seconds"`
	RateLimitRPS       *float64      `yaml:"rate_limit_rps"`
	RateLimitBurst     *int          `yaml:"rate_limit_burst"`
	LogLevel           string        `yaml:"log_level"`
	Artifacts          predict.Names `yaml:"artifacts"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:           "3000",
		Env:            "development",
		ModelDir:       "models",
		AssetsDir:      "assets",
		CacheTTL:       120 * time.Second,
		HTTPTimeout:    10 * time.Second,
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		LogLevel:       "info",
		Artifacts:      predict.DefaultNames(),
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE, then environment variables (including a .env file if present).
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	setString(&c.Port, f.Port)
	setString(&c.Env, f.Env)
	setString(&c.ModelDir, f.ModelDir)
	setString(&c.AssetsDir, f.AssetsDir)
	setString(&c.LogLevel, f.LogLevel)
	if f.CacheTTLSeconds != nil {
		c.CacheTTL = time.Duration(*f.CacheTTLSeconds) * time.Second
	}
	if f.HTTPTimeoutSeconds != nil {
		c.HTTPTimeout = time.Duration(*f.HTTPTimeoutSeconds) * time.Second
	}
	if f.RateLimitRPS != nil {
		c.RateLimitRPS = *f.RateLimitRPS
	}
	if f.RateLimitBurst != nil {
		c.RateLimitBurst = *f.RateLimitBurst
	}
	setString(&c.Artifacts.Taxi, f.Artifacts.Taxi)
	setString(&c.Artifacts.Churn, f.Artifacts.Churn)
	setString(&c.Artifacts.ChurnScaler, f.Artifacts.ChurnScaler)
	setString(&c.Artifacts.Engagement, f.Artifacts.Engagement)
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	c.ModelDir = getEnv("MODEL_DIR", c.ModelDir)
	c.AssetsDir = getEnv("ASSETS_DIR", c.AssetsDir)
	c.CacheTTL = getDurationEnv("CACHE_TTL_SECONDS", c.CacheTTL)
	c.HTTPTimeout = getDurationEnv("HTTP_TIMEOUT_SECONDS", c.HTTPTimeout)
	c.RateLimitRPS = getFloatEnv("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = getIntEnv("RATE_LIMIT_BURST", c.RateLimitBurst)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// RateLimitEnabled reports whether the per-client limiter is on.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

// SlogLevel parses LogLevel. Validate rejects values this cannot parse.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	switch c.Env {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Env))
	}
	if c.ModelDir == "" {
		errs = append(errs, errors.New("model directory is required"))
	}
	if c.AssetsDir == "" {
		errs = append(errs, errors.New("assets directory is required"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache TTL must not be negative, got %s", c.CacheTTL))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP timeout must be positive, got %s", c.HTTPTimeout))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %g", c.RateLimitRPS))
	}
	if c.RateLimitEnabled() && c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("rate limit burst must be at least 1, got %d", c.RateLimitBurst))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	a := c.Artifacts
	if a.Taxi == "" || a.Churn == "" || a.ChurnScaler == "" || a.Engagement == "" {
		errs = append(errs, errors.New("every artifact name is required"))
	}

	return errors.Join(errs...)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
