package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Project identity
	ProjectName string
	Template    string

	// Environments to provision, in creation order
	Environments []string

	// Managed database
	EnableDatabase bool
	Organization   string
	Group          string

	// Blob storage
	EnableBlob bool
	Endpoint   string
	Region     string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runProjectGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	if err := runEnvironmentsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("environments: %w", err)
	}

	if err := runDatabaseGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := runBlobGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("blob storage: %w", err)
	}

	return result, nil
}
