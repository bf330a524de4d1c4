package cli

import (
	"fmt"
	"strings"

	"portfolio_site_go/config"
	"portfolio_site_go/services/api"

	"github.com/spf13/cobra"
)

func (a *app) newLoginCmd() *cobra.Command {
	var turnstileToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save backend URL and admin credentials",
		Long: `Verify the admin credentials against the backend and save them.

You can provide the URL, username and password as flags, or you will be
prompted for them. The password prompt does not echo.

Example:
  siteadmin login --url https://api.example.com --username admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogin(turnstileToken)
		},
	}
	cmd.Flags().StringVar(&turnstileToken, "turnstile-token", "", "Human-verification token, if the backend requires one")
	return cmd
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	input, err := a.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (a *app) runLogin(turnstileToken string) error {
	url, username, password := a.opts.serverURL, a.opts.username, a.opts.password

	// Prefill from an existing config
	if existing, err := config.LoadAdminFrom(a.configFile()); err == nil {
		if url == "" {
			url = existing.API.URL
		}
		if username == "" {
			username = existing.API.Username
		}
	}

	var err error
	if url == "" {
		if url, err = a.prompt("Backend API URL (e.g., https://api.example.com): "); err != nil {
			return fmt.Errorf("failed to read URL: %w", err)
		}
	}
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	if username == "" {
		if username, err = a.prompt("Username: "); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if password == "" {
		fmt.Fprint(a.out, "Password: ")
		password, err = a.readPassword()
		fmt.Fprintln(a.out)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	timeout := a.opts.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := &config.AdminConfig{
		API: config.AdminAPIConfig{URL: url, Username: username, Password: password},
		Defaults: config.AdminDefaults{
			Output:  "human",
			Timeout: timeout,
			Locale:  a.opts.locale,
		},
	}
	if cfg.Defaults.Locale == "" {
		cfg.Defaults.Locale = "en"
	}

	ctx, cancel := requestContext(cfg)
	defer cancel()

	client := api.NewClient(url, timeoutOf(cfg))
	if _, err := client.Login(ctx, username, password, turnstileToken); err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("authentication failed: invalid username or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	path := a.configFile()
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	a.printSuccess("Successfully logged in to %s as %s", url, username)
	a.printSuccess("Configuration saved to %s", path)
	return nil
}
