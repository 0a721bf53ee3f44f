package commands

import (
	"github.com/spf13/cobra"

	"github.com/appforge/appforge/cmd/appforge/handlers"
)

// Init returns the command for interactively creating a project configuration.
//
// This command guides users through creating a project configuration YAML
// file using an interactive wizard with text inputs, single-select, and
// confirm prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "appforge.yaml")
//	--force, -f: Overwrite an existing file without asking
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a project configuration",
		Long: `Interactively create a project configuration file.

This command guides you through configuring your project step by step.
It will ask about:

  - Project identity (name and scaffolding template)
  - Environments to provision (dev, staging, prod by default)
  - Managed database provisioning (organization and group)
  - Blob-storage provisioning (endpoint and region)

The generated file is the input to 'appforge provision'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "appforge.yaml", "Output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")

	return cmd
}
