// Package database provisions one managed libSQL database per project
// environment.
package database

import (
	"context"
	"fmt"

	"github.com/appforge/appforge/internal/platform/turso"
	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/util/naming"
)

// API is the subset of the platform client the step needs.
type API interface {
	CreateDatabase(ctx context.Context, org, name, group string) (*turso.Database, error)
	DeleteDatabase(ctx context.Context, org, name string) error
	CreateDatabaseToken(ctx context.Context, org, name string) (string, error)
}

// Step provisions the database for a single environment. Each environment
// is its own step so the orchestrator can compensate partially provisioned
// runs per database, not per batch.
type Step struct {
	api         API
	org         string
	group       string
	project     string
	environment string
	skip        bool
}

// NewStep creates a database provisioning step for one environment.
func NewStep(api API, org, group, project, environment string, skip bool) *Step {
	return &Step{
		api:         api,
		org:         org,
		group:       group,
		project:     project,
		environment: environment,
		skip:        skip,
	}
}

// Name implements provisioning.Step.
func (s *Step) Name() string {
	return fmt.Sprintf("database-%s", s.environment)
}

// Provision creates the environment database and mints its connection
// token. The returned compensation deletes exactly this database.
func (s *Step) Provision(ctx *provisioning.Context) (*provisioning.StepResult, error) {
	if s.skip {
		return &provisioning.StepResult{Skipped: true}, nil
	}

	name := naming.Database(s.project, s.environment)

	ctx.Observer.Printf("[%s] creating database %s", s.Name(), name)
	db, err := s.api.CreateDatabase(ctx, s.org, name, s.group)
	if err != nil {
		return nil, fmt.Errorf("failed to create database %s: %w", name, err)
	}

	token, err := s.api.CreateDatabaseToken(ctx, s.org, name)
	if err != nil {
		// The database exists but is unusable without a token; delete it
		// here so the failed step leaves nothing behind. The orchestrator
		// only compensates steps that already succeeded.
		if delErr := s.api.DeleteDatabase(ctx, s.org, name); delErr != nil {
			ctx.Observer.Printf("[%s] warning: could not remove database %s after token failure: %v", s.Name(), name, delErr)
		}
		return nil, fmt.Errorf("failed to mint token for database %s: %w", name, err)
	}

	api, org := s.api, s.org
	return &provisioning.StepResult{
		Credentials: map[string]string{
			"url":   fmt.Sprintf("libsql://%s", db.Hostname),
			"token": token,
		},
		Resources: []provisioning.Resource{
			{Name: name, Environment: s.environment, Status: "created"},
		},
		Compensation: &provisioning.Compensation{
			Name: fmt.Sprintf("delete database %s", name),
			Undo: func(ctx context.Context) error {
				return api.DeleteDatabase(ctx, org, name)
			},
		},
	}, nil
}
