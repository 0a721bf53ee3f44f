package config

// DefaultEnvironments is applied when the config names none.
var DefaultEnvironments = []string{"dev", "staging", "prod"}

// Config is the appforge project configuration.
type Config struct {
	// Project is the scaffolded project name; all provisioned resource
	// names derive from it.
	Project string `yaml:"project"`

	// Template is the scaffolding template the project was created from.
	Template string `yaml:"template,omitempty"`

	// Environments lists the environments to provision, in creation
	// order. Defaults to dev, staging, prod.
	Environments []string `yaml:"environments,omitempty"`

	// Database configures managed database provisioning.
	Database DatabaseConfig `yaml:"database,omitempty"`

	// Blob configures blob-storage provisioning.
	Blob BlobConfig `yaml:"blob,omitempty"`
}

// DatabaseConfig configures the managed database resources.
type DatabaseConfig struct {
	Enabled bool `yaml:"enabled"`

	// Organization is the Turso organization slug owning the databases.
	Organization string `yaml:"organization,omitempty"`

	// Group is the Turso database group. Defaults to "default".
	Group string `yaml:"group,omitempty"`

	// SkipProvisioning short-circuits the database steps to immediate
	// success without creating anything. Dry-run escape hatch.
	SkipProvisioning bool `yaml:"skip_provisioning,omitempty"`
}

// BlobConfig configures the project's blob-storage bucket.
// Access credentials come from APPFORGE_S3_ACCESS_KEY and
// APPFORGE_S3_SECRET_KEY, never from the file.
type BlobConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the S3-compatible endpoint URL. Empty targets AWS.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Region for bucket placement. Defaults to "us-east-1".
	Region string `yaml:"region,omitempty"`

	// SkipProvisioning short-circuits the blob step.
	SkipProvisioning bool `yaml:"skip_provisioning,omitempty"`
}

// applyDefaults fills unset fields with their defaults.
func (c *Config) applyDefaults() {
	if len(c.Environments) == 0 {
		c.Environments = append([]string(nil), DefaultEnvironments...)
	}
	if c.Database.Group == "" {
		c.Database.Group = "default"
	}
	if c.Blob.Region == "" {
		c.Blob.Region = "us-east-1"
	}
}
