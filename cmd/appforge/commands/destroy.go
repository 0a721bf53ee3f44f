package commands

import (
	"github.com/spf13/cobra"

	"github.com/appforge/appforge/cmd/appforge/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes all provisioned resources for a project.
// Databases are deleted in reverse environment order, then the blob
// bucket is emptied and deleted.
func Destroy() *cobra.Command {
	var configPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy all provisioned resources for a project",
		Long: `Destroy removes all resources provisioned for the project.

This command deletes:
  - One database per configured environment, in reverse order
  - The blob-storage bucket, including all objects in it

Deletion is best effort: a resource that cannot be deleted is reported
as a warning and the teardown continues.

Example:
  appforge destroy -c appforge.yaml

WARNING: This operation is irreversible. All stored data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to project configuration file (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
