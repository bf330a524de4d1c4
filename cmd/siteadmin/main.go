// Package main is the entry point for siteadmin.
package main

import (
	"os"

	"portfolio_site_go/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := cli.Execute(Version); err != nil {
		os.Exit(1)
	}
}
