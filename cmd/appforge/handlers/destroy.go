package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/appforge/appforge/internal/credential"
	"github.com/appforge/appforge/internal/platform/s3"
	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/provisioning/database"
	"github.com/appforge/appforge/internal/provisioning/destroy"
	"github.com/appforge/appforge/internal/ui/tui"
)

// Destroyer tears down a project's resources and reports warnings.
type Destroyer interface {
	Run(ctx *provisioning.Context) []string
}

// Factory function variables for destroy - can be replaced in tests.
var (
	// newDestroyProvisioner creates the teardown provisioner.
	newDestroyProvisioner = func(db database.API, bucket s3.BucketAPI) Destroyer {
		return destroy.NewProvisioner(db, bucket)
	}

	// confirmDestroy asks the user before an irreversible teardown.
	confirmDestroy = defaultConfirmDestroy
)

// Destroy handles the destroy command.
//
// It loads the project configuration and deletes all associated
// resources: databases in reverse environment order, then the blob
// bucket. Deletion is best effort; leftover resources are reported as
// warnings and make the command fail so scripts notice.
func Destroy(ctx context.Context, configPath string, skipConfirm bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !skipConfirm {
		if !interactiveTerminal() {
			return fmt.Errorf("destroy needs a terminal to confirm; re-run with --yes")
		}
		ok, err := confirmDestroy(cfg.Project)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Println("Aborted, nothing was deleted.")
			return nil
		}
	}

	observer := newObserver()

	var dbAPI database.API
	if cfg.Database.Enabled {
		manager := newCredentialManager(observer)
		result, err := manager.Ensure(ctx, credential.Options{SuppressPrompts: true})
		if err != nil {
			return fmt.Errorf("credential setup failed: %w", err)
		}
		if result.Status == credential.StatusLoginRequired {
			return fmt.Errorf("not logged in to the turso CLI; run 'turso auth login' and retry")
		}
		dbAPI = newDatabaseAPI(result.Token)
	}

	var bucketAPI s3.BucketAPI
	if cfg.Blob.Enabled {
		bucketAPI, err = newBucketClient(cfg.Blob, os.Getenv(envS3AccessKey), os.Getenv(envS3SecretKey))
		if err != nil {
			return fmt.Errorf("failed to create blob-storage client: %w", err)
		}
	}

	pCtx := provisioning.NewContext(ctx, cfg, observer)
	warnings := newDestroyProvisioner(dbAPI, bucketAPI).Run(pCtx)

	fmt.Println(tui.RenderDestroyReport(cfg.Project, warnings))

	if len(warnings) > 0 {
		return fmt.Errorf("teardown finished with %d warnings", len(warnings))
	}
	return nil
}

// defaultConfirmDestroy prompts via stdin.
func defaultConfirmDestroy(project string) (bool, error) {
	fmt.Printf("\nThis deletes every provisioned resource of project %q.\n", project)
	fmt.Print("Type the project name to confirm: ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	return strings.TrimSpace(response) == project, nil
}
