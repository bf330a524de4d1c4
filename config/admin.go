package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AdminConfig is the credentials file used by the siteadmin CLI.
type AdminConfig struct {
	API      AdminAPIConfig `yaml:"api"`
	Defaults AdminDefaults  `yaml:"defaults"`
}

// AdminAPIConfig contains backend connection details and Basic-auth credentials.
type AdminAPIConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// AdminDefaults contains default CLI settings.
type AdminDefaults struct {
	Output  string `yaml:"output"`
	Timeout int    `yaml:"timeout"`
	Locale  string `yaml:"locale"`
}

// ErrNotConfigured is returned when the credentials file doesn't exist.
var ErrNotConfigured = errors.New("siteadmin not configured. Run 'siteadmin login' first")

// DefaultAdminConfigPath returns the default credentials file path.
func DefaultAdminConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "portfolio-admin", "config.yaml")
}

// LoadAdminFrom reads the credentials file at path.
func LoadAdminFrom(path string) (*AdminConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AdminConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Defaults.Output == "" {
		cfg.Defaults.Output = "human"
	}
	if cfg.Defaults.Timeout == 0 {
		cfg.Defaults.Timeout = 30
	}
	if cfg.Defaults.Locale == "" {
		cfg.Defaults.Locale = "en"
	}

	return &cfg, nil
}

// SaveTo writes the credentials file, readable by the owner only.
func (c *AdminConfig) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the URL and both credentials are set.
func (c *AdminConfig) IsConfigured() bool {
	return c != nil && c.API.URL != "" && c.API.Username != "" && c.API.Password != ""
}

// DeleteAdminFrom removes the credentials file at path.
func DeleteAdminFrom(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// RedactedPassword returns the password with most characters hidden.
func (c *AdminConfig) RedactedPassword() string {
	if len(c.API.Password) <= 8 {
		return "***"
	}
	return c.API.Password[:2] + "..." + c.API.Password[len(c.API.Password)-2:]
}
