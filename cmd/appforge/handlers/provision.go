// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/appforge/appforge/internal/config"
	"github.com/appforge/appforge/internal/credential"
	"github.com/appforge/appforge/internal/platform/s3"
	"github.com/appforge/appforge/internal/platform/turso"
	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/provisioning/blob"
	"github.com/appforge/appforge/internal/provisioning/database"
	"github.com/appforge/appforge/internal/ui/tui"
	"github.com/appforge/appforge/internal/util/prerequisites"
)

const defaultConfigFile = "appforge.yaml"

// Environment variables holding the blob-storage access credentials.
// They are never read from the config file.
const (
	envS3AccessKey = "APPFORGE_S3_ACCESS_KEY"
	envS3SecretKey = "APPFORGE_S3_SECRET_KEY"
)

// CredentialEnsurer is the credential-lifecycle slice the handler drives.
type CredentialEnsurer interface {
	Ensure(ctx context.Context, opts credential.Options) (*credential.Result, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// checkDefaultPrereqs runs the required-tool checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// interactiveTerminal reports whether stdout is attached to a terminal.
	interactiveTerminal = tui.Interactive

	// newCredentialManager creates the credential manager.
	newCredentialManager = func(observer provisioning.Observer) CredentialEnsurer {
		return credential.NewManager(observer)
	}

	// newDatabaseAPI creates the database-platform client from a token.
	newDatabaseAPI = func(token string) database.API {
		return turso.NewClient(token)
	}

	// newBucketClient creates the blob-storage client.
	newBucketClient = func(cfg config.BlobConfig, accessKey, secretKey string) (s3.BucketAPI, error) {
		return s3.NewClient(cfg.Endpoint, cfg.Region, accessKey, secretKey)
	}

	// newObserver creates the provisioning observer.
	newObserver = func() provisioning.Observer {
		return provisioning.NewConsoleObserver()
	}
)

// Provision provisions all backing resources for a project.
//
// The workflow:
//  1. Load and validate the project configuration
//  2. Check required client tools when the database is enabled
//  3. Ensure a usable platform token, reusing or regenerating as needed
//  4. Build one database step per environment, then the blob step
//  5. Execute the steps; the first failure rolls back everything created
//
// A missing login is a pause point, not a failure: the handler prints the
// login instructions and returns without provisioning anything.
func Provision(ctx context.Context, configPath string, noInput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	observer := newObserver()

	var dbAPI database.API
	if cfg.Database.Enabled {
		if err := checkDefaultPrereqs().Error(); err != nil {
			return err
		}

		manager := newCredentialManager(observer)
		result, err := manager.Ensure(ctx, credential.Options{SuppressPrompts: noInput})
		if err != nil {
			return fmt.Errorf("credential setup failed: %w", err)
		}
		if result.Status == credential.StatusLoginRequired {
			// Piped output cannot pause for a login, so treat it like --no-input.
			if noInput || !interactiveTerminal() {
				return fmt.Errorf("not logged in to the turso CLI; run 'turso auth login' and retry")
			}
			fmt.Println("Not logged in to the turso CLI.")
			fmt.Println("Run 'turso auth login' and then re-run 'appforge provision'.")
			return nil
		}

		dbAPI = newDatabaseAPI(result.Token)
	}

	steps, err := buildSteps(cfg, dbAPI)
	if err != nil {
		return err
	}

	pCtx := provisioning.NewContext(ctx, cfg, observer)
	outcome := provisioning.Execute(pCtx, steps)

	fmt.Println(tui.RenderOutcome(cfg.Project, outcome))

	if !outcome.Success {
		return fmt.Errorf("provisioning failed at %s: %s", outcome.FailedStep, outcome.Cause)
	}
	return nil
}

// buildSteps assembles the run's step list: databases in environment
// declaration order, then the blob bucket.
func buildSteps(cfg *config.Config, dbAPI database.API) ([]provisioning.Step, error) {
	var steps []provisioning.Step

	if cfg.Database.Enabled {
		for _, env := range cfg.Environments {
			steps = append(steps, database.NewStep(
				dbAPI,
				cfg.Database.Organization,
				cfg.Database.Group,
				cfg.Project,
				env,
				cfg.Database.SkipProvisioning,
			))
		}
	}

	if cfg.Blob.Enabled {
		accessKey := os.Getenv(envS3AccessKey)
		secretKey := os.Getenv(envS3SecretKey)
		if !cfg.Blob.SkipProvisioning && (accessKey == "" || secretKey == "") {
			return nil, fmt.Errorf("blob storage is enabled but %s or %s is not set", envS3AccessKey, envS3SecretKey)
		}

		bucketAPI, err := newBucketClient(cfg.Blob, accessKey, secretKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob-storage client: %w", err)
		}
		steps = append(steps, blob.NewStep(bucketAPI, cfg.Project, cfg.Blob.SkipProvisioning))
	}

	return steps, nil
}

// loadConfig loads and validates the project configuration. If configPath
// is empty, it looks for appforge.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = defaultConfigFile
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no config file found at %s\nRun 'appforge init' to create one", configPath)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
