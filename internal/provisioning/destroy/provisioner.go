// Package destroy handles teardown of previously provisioned resources.
package destroy

import (
	"fmt"

	"github.com/appforge/appforge/internal/platform/s3"
	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/provisioning/database"
	"github.com/appforge/appforge/internal/util/naming"
)

// Provisioner deletes every resource a project provisioned: databases in
// reverse environment order first, then the blob bucket. Deletion is best
// effort per resource; failures are collected as warnings so one stuck
// resource never blocks the rest of the teardown.
type Provisioner struct {
	db     database.API
	bucket s3.BucketAPI
}

// NewProvisioner creates a destroy provisioner. Either client may be nil
// when the corresponding resource kind was never enabled.
func NewProvisioner(db database.API, bucket s3.BucketAPI) *Provisioner {
	return &Provisioner{db: db, bucket: bucket}
}

// Run tears down the project's resources and returns warnings for
// anything that could not be deleted.
func (p *Provisioner) Run(ctx *provisioning.Context) []string {
	cfg := ctx.Config
	var warnings []string

	ctx.Observer.Printf("[destroy] tearing down resources for project %s", cfg.Project)

	if p.db != nil && cfg.Database.Enabled {
		// Reverse order mirrors rollback: the most recently created
		// environment goes first.
		for i := len(cfg.Environments) - 1; i >= 0; i-- {
			env := cfg.Environments[i]
			name := naming.Database(cfg.Project, env)
			ctx.Observer.Event(provisioning.Event{
				Type: provisioning.EventRollbackStarted, Resource: name,
				Message: "deleting database",
			})
			if err := p.db.DeleteDatabase(ctx, cfg.Database.Organization, name); err != nil {
				warnings = append(warnings, fmt.Sprintf("database %s: %v", name, err))
				continue
			}
			ctx.Observer.Printf("[destroy] deleted database %s", name)
		}
	}

	if p.bucket != nil && cfg.Blob.Enabled {
		bucket := naming.Bucket(cfg.Project)
		if err := p.deleteBucket(ctx, bucket); err != nil {
			warnings = append(warnings, fmt.Sprintf("bucket %s: %v", bucket, err))
		} else {
			ctx.Observer.Printf("[destroy] deleted bucket %s", bucket)
		}
	}

	return warnings
}

func (p *Provisioner) deleteBucket(ctx *provisioning.Context, bucket string) error {
	exists, err := p.bucket.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if err := p.bucket.EmptyBucket(ctx, bucket); err != nil {
		return err
	}
	return p.bucket.DeleteBucket(ctx, bucket)
}
