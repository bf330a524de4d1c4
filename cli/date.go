package cli

import (
	"fmt"

	"portfolio_site_go/services/dateformat"

	"github.com/spf13/cobra"
)

func (a *app) newDateCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "date <iso-timestamp>",
		Short: "Preview how a backend timestamp is displayed",
		Long: `Format an ISO 8601 timestamp the way the site displays it.

Timestamps without a zone are read as UTC. Unparseable input is printed as-is.

Examples:
  siteadmin date 2026-02-04T09:08:32.000078
  siteadmin date 2026-02-04T09:08:32 --locale zh --style long
  siteadmin date 2026-02-04T09:08:32 --style datetime`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale := a.opts.locale
			if locale == "" {
				locale = "en"
			}
			dates := &dateformat.Formatter{DefaultLocale: locale}

			switch style {
			case "datetime":
				fmt.Fprintln(a.out, dates.FormatDateTime(args[0], locale))
			case string(dateformat.StyleShort), string(dateformat.StyleMedium), string(dateformat.StyleLong):
				fmt.Fprintln(a.out, dates.FormatDate(args[0], locale, dateformat.Style(style)))
			default:
				return fmt.Errorf("unknown style %q: use short, medium, long or datetime", style)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&style, "style", "s", string(dateformat.StyleMedium), "short, medium, long or datetime")
	return cmd
}
