// Package cli implements siteadmin, the command-line tool for managing the
// portfolio's posts and projects through the backend API.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// options are the global flags shared by every command.
type options struct {
	jsonOutput bool
	configPath string
	serverURL  string
	username   string
	password   string
	timeout    int
	locale     string
}

// app carries the flags and I/O streams for one invocation.
type app struct {
	opts    options
	version string

	in  *bufio.Reader
	out io.Writer
	err io.Writer
	// readPassword reads a secret without echo.
	readPassword func() (string, error)
}

// NewRootCmd builds the siteadmin command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{
		version:      version,
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		err:          os.Stderr,
		readPassword: readTerminalPassword,
	}

	root := &cobra.Command{
		Use:   "siteadmin",
		Short: "Manage the portfolio site's posts and projects",
		Long: `siteadmin talks to the portfolio backend API to list, create, update and
delete blog posts and portfolio projects.

Get started by running:
  siteadmin login --url https://api.example.com --username admin`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.out = cmd.OutOrStdout()
			a.err = cmd.ErrOrStderr()
			if cmd.InOrStdin() != os.Stdin {
				a.in = bufio.NewReader(cmd.InOrStdin())
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.jsonOutput, "json", "j", false, "Output in JSON format")
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "Path to config file (default: ~/.config/portfolio-admin/config.yaml)")
	flags.StringVar(&a.opts.serverURL, "url", "", "Backend API URL (overrides config)")
	flags.StringVarP(&a.opts.username, "username", "u", "", "Admin username (overrides config)")
	flags.StringVarP(&a.opts.password, "password", "p", "", "Admin password (overrides config)")
	flags.IntVar(&a.opts.timeout, "timeout", 0, "Request timeout in seconds (default from config, or 30)")
	flags.StringVarP(&a.opts.locale, "locale", "l", "", "Locale for dates: en, zh or a full tag such as en-US")

	root.AddCommand(
		a.newVersionCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newPostsCmd(),
		a.newProjectsCmd(),
		a.newDateCmd(),
	)
	return root
}

// Execute runs siteadmin with the process arguments.
func Execute(version string) error {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "siteadmin version %s\n", a.version)
		},
	}
}

// printSuccess prints a success message.
func (a *app) printSuccess(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// printWarning prints a message to stderr.
func (a *app) printWarning(format string, args ...interface{}) {
	fmt.Fprintf(a.err, "Warning: "+format+"\n", args...)
}

func readTerminalPassword() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
