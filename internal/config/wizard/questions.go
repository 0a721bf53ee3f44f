package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

// projectNameRegex validates project name format: 1-32 lowercase alphanumeric with hyphens.
var projectNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// runProjectGroup prompts for project name and scaffolding template.
func runProjectGroup(ctx context.Context, result *WizardResult) error {
	result.Template = Templates[0].Value

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder("my-app").
				Value(&result.ProjectName).
				Validate(validateProjectName),
			huh.NewSelect[string]().
				Title("Template").
				Description("Scaffolding template for the new project").
				Options(TemplatesToOptions()...).
				Value(&result.Template),
		).Title("Project"),
	).RunWithContext(ctx)
}

// runEnvironmentsGroup prompts for the environment list.
func runEnvironmentsGroup(ctx context.Context, result *WizardResult) error {
	envsInput := "dev, staging, prod"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Environments").
				Description("Comma-separated environment names, in creation order").
				Value(&envsInput).
				Validate(validateEnvironments),
		).Title("Environments"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.Environments = parseEnvironments(envsInput)
	return nil
}

// runDatabaseGroup prompts for managed database provisioning.
func runDatabaseGroup(ctx context.Context, result *WizardResult) error {
	result.EnableDatabase = true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Provision Databases?").
				Description("One managed libSQL database per environment").
				Value(&result.EnableDatabase),
		).Title("Database"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.EnableDatabase {
		return nil
	}

	result.Group = "default"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Organization").
				Description("Turso organization slug that owns the databases").
				Placeholder("my-org").
				Value(&result.Organization).
				Validate(validateOrganization),
			huh.NewInput().
				Title("Database Group").
				Description("Turso database group").
				Value(&result.Group),
		).Title("Database Configuration"),
	).RunWithContext(ctx)
}

// runBlobGroup prompts for blob-storage provisioning.
func runBlobGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Provision Blob Storage?").
				Description("One S3-compatible bucket shared across environments").
				Value(&result.EnableBlob),
		).Title("Blob Storage"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.EnableBlob {
		return nil
	}

	result.Region = Regions[0].Value

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint (Optional)").
				Description("S3-compatible endpoint URL. Leave empty for AWS.").
				Placeholder("https://storage.example.com (or leave empty)").
				Value(&result.Endpoint),
			huh.NewSelect[string]().
				Title("Region").
				Description("Bucket placement region").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Blob Storage Configuration"),
	).RunWithContext(ctx)
}

// validateProjectName validates the project name format.
func validateProjectName(s string) error {
	if s == "" {
		return errProjectNameRequired
	}
	if !projectNameRegex.MatchString(s) {
		return errProjectNameInvalid
	}
	return nil
}

// validateEnvironments validates a comma-separated environment list.
func validateEnvironments(s string) error {
	envs := parseEnvironments(s)
	if len(envs) == 0 {
		return errEnvironmentsRequired
	}
	seen := make(map[string]bool, len(envs))
	for _, env := range envs {
		if !projectNameRegex.MatchString(env) {
			return errEnvironmentInvalid
		}
		if seen[env] {
			return errEnvironmentDuplicate
		}
		seen[env] = true
	}
	return nil
}

// validateOrganization validates the organization slug.
func validateOrganization(s string) error {
	if strings.TrimSpace(s) == "" {
		return errOrganizationRequired
	}
	return nil
}

// parseEnvironments parses a comma-separated list of environment names.
func parseEnvironments(input string) []string {
	parts := strings.Split(input, ",")
	envs := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			envs = append(envs, trimmed)
		}
	}
	return envs
}
