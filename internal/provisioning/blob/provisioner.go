// Package blob provisions the project's blob-storage bucket.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/appforge/appforge/internal/platform/s3"
	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/util/naming"
	"github.com/appforge/appforge/internal/util/retry"
)

// retryInitialDelay is shortened in tests.
var retryInitialDelay = 2 * time.Second

// Step provisions one S3-compatible bucket for the project.
type Step struct {
	api     s3.BucketAPI
	project string
	skip    bool
}

// NewStep creates a blob storage provisioning step.
func NewStep(api s3.BucketAPI, project string, skip bool) *Step {
	return &Step{api: api, project: project, skip: skip}
}

// Name implements provisioning.Step.
func (s *Step) Name() string {
	return "blob-storage"
}

// Provision creates the project bucket. Bucket creation on S3-compatible
// stores can fail transiently right after account setup, so it is retried
// with backoff; the overall step still executes at most once per run.
func (s *Step) Provision(ctx *provisioning.Context) (*provisioning.StepResult, error) {
	if s.skip {
		return &provisioning.StepResult{Skipped: true}, nil
	}

	bucket := naming.Bucket(s.project)
	ctx.Observer.Printf("[%s] creating bucket %s", s.Name(), bucket)

	err := retry.Do(ctx, func() error {
		return s.api.CreateBucket(ctx, bucket)
	}, retry.WithMaxAttempts(3), retry.WithInitialDelay(retryInitialDelay))
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	api := s.api
	return &provisioning.StepResult{
		Credentials: map[string]string{"bucket": bucket},
		Resources: []provisioning.Resource{
			{Name: bucket, Status: "created"},
		},
		Compensation: &provisioning.Compensation{
			Name: fmt.Sprintf("delete bucket %s", bucket),
			Undo: func(ctx context.Context) error {
				if err := api.EmptyBucket(ctx, bucket); err != nil {
					return err
				}
				return api.DeleteBucket(ctx, bucket)
			},
		},
	}, nil
}
