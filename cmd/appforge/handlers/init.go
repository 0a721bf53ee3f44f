package handlers

import (
	"context"
	"fmt"

	"github.com/appforge/appforge/internal/config"
	"github.com/appforge/appforge/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, force bool) error {
	if fileExists(outputPath) && !force {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Println("Aborted, existing file left untouched.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("appforge - project scaffolding and provisioning")
	fmt.Println("===============================================")
	fmt.Println()
	fmt.Println("This wizard creates a project configuration with sensible defaults.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Project Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:         %s\n", cfg.Project)
	fmt.Printf("  Template:     %s\n", cfg.Template)
	fmt.Printf("  Environments: %v\n", cfg.Environments)
	fmt.Printf("  Database:     %s\n", enabledLabel(cfg.Database.Enabled))
	fmt.Printf("  Blob storage: %s\n", enabledLabel(cfg.Blob.Enabled))
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	step := 1
	if cfg.Database.Enabled {
		fmt.Printf("  %d. Log in to the turso CLI if you have not yet:\n", step)
		fmt.Println("     turso auth login")
		fmt.Println()
		step++
	}
	if cfg.Blob.Enabled {
		fmt.Printf("  %d. Set your blob-storage credentials:\n", step)
		fmt.Printf("     export %s=<access-key>\n", envS3AccessKey)
		fmt.Printf("     export %s=<secret-key>\n", envS3SecretKey)
		fmt.Println()
		step++
	}
	fmt.Printf("  %d. Provision the resources:\n", step)
	fmt.Printf("     appforge provision -c %s\n", outputPath)
	fmt.Println()
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
