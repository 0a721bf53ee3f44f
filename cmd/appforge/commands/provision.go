package commands

import (
	"github.com/spf13/cobra"

	"github.com/appforge/appforge/cmd/appforge/handlers"
)

// Provision returns the command for provisioning project resources.
//
// This command handles the complete resource lifecycle for a project:
// loading configuration, ensuring platform credentials, creating one
// database per environment, and creating the blob bucket. On the first
// failure, everything the run created is rolled back in reverse order.
//
// Optional flags:
//
//	--config, -c: Path to project configuration YAML file (default: appforge.yaml)
//	--no-input: Never prompt; fail instead of waiting for interactive login
//
// Environment variables:
//
//	APPFORGE_S3_ACCESS_KEY: Blob-storage access key (required when blob is enabled)
//	APPFORGE_S3_SECRET_KEY: Blob-storage secret key (required when blob is enabled)
func Provision() *cobra.Command {
	var configPath string
	var noInput bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the project's backing resources",
		Long: `Provision the project's backing resources.

This command creates one managed libSQL database per environment and,
when enabled, one S3-compatible blob bucket. Provisioning is
transactional: on the first failure every resource created by the run
is deleted again, in reverse creation order.

Database provisioning needs a logged-in turso CLI session on first use.
Run 'turso auth login' if prompted.

Examples:
  # Provision using appforge.yaml in the current directory
  appforge provision

  # Provision using a specific config file
  appforge provision -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, noInput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: appforge.yaml)")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; fail instead of waiting for interactive login")

	return cmd
}
