package commands

import (
	"github.com/spf13/cobra"

	"github.com/appforge/appforge/cmd/appforge/handlers"
)

// Doctor returns the command for diagnosing the local setup.
//
// This command checks for required client tools, validates the project
// configuration if one is present, and reports the platform login and
// stored-token state.
//
// Optional flags:
//
//	--config, -c: Path to project configuration YAML file (default: appforge.yaml)
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local setup and platform credentials",
		Long: `Diagnose the local appforge setup.

Checks performed:
  - Required and optional client tools (turso, sqlite3)
  - Project configuration file validity, if one is present
  - Platform login state and the stored access token

Examples:
  # Diagnose with the default config
  appforge doctor

  # Diagnose a specific config file
  appforge doctor -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: appforge.yaml)")

	return cmd
}
