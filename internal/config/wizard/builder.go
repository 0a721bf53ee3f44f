package wizard

import "github.com/appforge/appforge/internal/config"

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Project:      result.ProjectName,
		Template:     result.Template,
		Environments: result.Environments,
	}

	if result.EnableDatabase {
		cfg.Database = config.DatabaseConfig{
			Enabled:      true,
			Organization: result.Organization,
			Group:        result.Group,
		}
	}

	if result.EnableBlob {
		cfg.Blob = config.BlobConfig{
			Enabled:  true,
			Endpoint: result.Endpoint,
			Region:   result.Region,
		}
	}

	return cfg
}
