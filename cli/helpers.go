package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio_site_go/config"
	"portfolio_site_go/services/api"
	"portfolio_site_go/services/dateformat"
)

const defaultTimeout = 30

// configFile returns the credentials path from --config or the default.
func (a *app) configFile() string {
	if a.opts.configPath != "" {
		return a.opts.configPath
	}
	return config.DefaultAdminConfigPath()
}

// loadConfig reads the credentials file and applies flag overrides. When no
// file exists, flags alone are enough as long as they name a URL.
func (a *app) loadConfig() (*config.AdminConfig, error) {
	cfg, err := config.LoadAdminFrom(a.configFile())
	if errors.Is(err, config.ErrNotConfigured) && a.opts.serverURL != "" {
		cfg = &config.AdminConfig{
			Defaults: config.AdminDefaults{Output: "human", Timeout: defaultTimeout, Locale: "en"},
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if a.opts.serverURL != "" {
		cfg.API.URL = a.opts.serverURL
	}
	if a.opts.username != "" {
		cfg.API.Username = a.opts.username
	}
	if a.opts.password != "" {
		cfg.API.Password = a.opts.password
	}
	if a.opts.timeout > 0 {
		cfg.Defaults.Timeout = a.opts.timeout
	}
	if a.opts.locale != "" {
		cfg.Defaults.Locale = a.opts.locale
	}
	if cfg.Defaults.Output == "json" {
		a.opts.jsonOutput = true
	}

	cfg.API.URL = strings.TrimRight(strings.TrimSpace(cfg.API.URL), "/")
	if cfg.API.URL == "" {
		return nil, config.ErrNotConfigured
	}
	return cfg, nil
}

func timeoutOf(cfg *config.AdminConfig) time.Duration {
	if cfg.Defaults.Timeout <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(cfg.Defaults.Timeout) * time.Second
}

// publicClient returns a client without credentials, for reads.
func (a *app) publicClient() (*api.Client, *config.AdminConfig, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(cfg.API.URL, timeoutOf(cfg)), cfg, nil
}

// authClient returns a Basic-auth client, for mutations.
func (a *app) authClient() (*api.Client, *config.AdminConfig, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.IsConfigured() {
		return nil, nil, fmt.Errorf("username and password are required; run 'siteadmin login' or pass --username and --password")
	}
	client := api.NewAuthClient(cfg.API.URL, cfg.API.Username, cfg.API.Password, timeoutOf(cfg))
	return client, cfg, nil
}

// requestContext bounds one command's API calls.
func requestContext(cfg *config.AdminConfig) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeoutOf(cfg))
}

// formatter returns a date formatter for the configured locale.
func formatter(cfg *config.AdminConfig) *dateformat.Formatter {
	return &dateformat.Formatter{DefaultLocale: cfg.Defaults.Locale}
}

func (a *app) outputJSON(data interface{}) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// parseID parses a positive numeric ID argument.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", raw)
	}
	return id, nil
}

// parseTags splits a comma-separated tag list, dropping empty entries.
func parseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// describeError turns API errors into actionable messages.
func describeError(action string, err error) error {
	switch {
	case api.IsUnauthorized(err):
		return fmt.Errorf("%s: authentication failed, check your username and password", action)
	case api.IsNotFound(err):
		return fmt.Errorf("%s: not found", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

// truncate shortens s to n runes for table output.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
