package cli

import (
	"errors"
	"fmt"

	"portfolio_site_go/config"

	"github.com/spf13/cobra"
)

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Long: `Remove the stored backend URL and admin credentials.

You will need to run 'siteadmin login' again before making changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogout()
		},
	}
}

func (a *app) runLogout() error {
	path := a.configFile()

	if _, err := config.LoadAdminFrom(path); err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			a.printSuccess("Already logged out (no configuration found)")
			return nil
		}
		// Unreadable files are still removed
		a.printWarning("could not read config: %v", err)
	}

	if err := config.DeleteAdminFrom(path); err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}

	a.printSuccess("Successfully logged out")
	a.printSuccess("Configuration removed from %s", path)
	return nil
}
