package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// MaxPostsPerPage mirrors the backend's upper bound on page size.
	MaxPostsPerPage = 100
	// DefaultPostsPerPage mirrors the backend's default page size.
	DefaultPostsPerPage = 12
)

type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"static"`
	// Public site URL, used for canonical links and the sitemap
	AppURL         string   `env:"APP_URL" envDefault:"https://tomsinp.com"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	// Backend API
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	// Google Analytics 4; empty disables the loader
	GAMeasurementID string `env:"GA_MEASUREMENT_ID"`
	// Display
	DefaultLocale   string `env:"DEFAULT_LOCALE" envDefault:"en"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE"`
	PostsPerPage    int    `env:"POSTS_PER_PAGE" envDefault:"12"`
	// Page views per IP per minute; 0 disables limiting
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	// Cron spec for the background backend ping; empty disables it
	BackendCheckSchedule string `env:"BACKEND_CHECK_SCHEDULE" envDefault:"@every 5m"`
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("[CRITICAL] Invalid configuration: %v", err)
	}
	return cfg
}

// Parse builds a Config from the environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.AppURL = strings.TrimRight(strings.TrimSpace(cfg.AppURL), "/")
	cfg.GAMeasurementID = strings.TrimSpace(cfg.GAMeasurementID)
	cfg.PostsPerPage = ClampPageSize(cfg.PostsPerPage)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if err := validateHTTPURL("API_BASE_URL", c.APIBaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("APP_URL", c.AppURL); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location returns the display zone for dates. A nil location keeps the
// offset carried by each timestamp.
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

// ClampPageSize keeps a page size inside the range the backend accepts.
func ClampPageSize(size int) int {
	switch {
	case size < 1:
		return DefaultPostsPerPage
	case size > MaxPostsPerPage:
		return MaxPostsPerPage
	default:
		return size
	}
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must start with http:// or https://, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", name, raw)
	}
	return nil
}
