package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errProjectNameRequired  = errors.New("project name is required")
	errProjectNameInvalid   = errors.New("project name must be 1-32 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errEnvironmentsRequired = errors.New("at least one environment is required")
	errEnvironmentInvalid   = errors.New("environment names must be lowercase alphanumeric characters or hyphens")
	errEnvironmentDuplicate = errors.New("environment names must be unique")
	errOrganizationRequired = errors.New("organization slug is required when the database is enabled")
)
