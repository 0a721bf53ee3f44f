package config

import (
	"fmt"
	"regexp"
)

// projectNameRegex validates project name format: 1-32 lowercase
// alphanumeric with hyphens, no leading or trailing hyphen.
var projectNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project name is required")
	}
	if !projectNameRegex.MatchString(c.Project) {
		return fmt.Errorf("invalid project name %q: must be 1-32 lowercase alphanumeric characters or hyphens", c.Project)
	}

	if len(c.Environments) == 0 {
		return fmt.Errorf("at least one environment is required")
	}
	seen := make(map[string]bool, len(c.Environments))
	for _, env := range c.Environments {
		if !projectNameRegex.MatchString(env) {
			return fmt.Errorf("invalid environment name %q", env)
		}
		if seen[env] {
			return fmt.Errorf("duplicate environment %q", env)
		}
		seen[env] = true
	}

	if c.Database.Enabled && c.Database.Organization == "" {
		return fmt.Errorf("database.organization is required when the database is enabled")
	}

	return nil
}
