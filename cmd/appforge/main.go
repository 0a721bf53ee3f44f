// Package main is the entry point for the appforge CLI.
//
// appforge scaffolds application projects and provisions their backing
// resources: one managed libSQL database per environment and an optional
// S3-compatible blob bucket. Provisioning is transactional; a failure
// rolls back everything the run created.
//
// Commands: init, provision, destroy, doctor.
//
// For detailed usage information, run:
//
//	appforge --help
package main

import (
	"fmt"
	"os"

	"github.com/appforge/appforge/cmd/appforge/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
