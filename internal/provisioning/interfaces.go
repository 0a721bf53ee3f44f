package provisioning

import "context"

// Step defines one external resource-creation unit.
// A step executes at most once per run and is never auto-retried; retry is
// a caller-level decision.
type Step interface {
	// Name returns the human-readable name of this step.
	Name() string

	// Provision executes the step. On success the result may carry a
	// compensation undoing exactly this step; the orchestrator registers
	// it only after the step returns without error.
	Provision(ctx *Context) (*StepResult, error)
}

// StepResult holds the output of one successful step.
type StepResult struct {
	// Skipped indicates the step short-circuited without touching the
	// platform. A skipped step registers no compensation.
	Skipped bool

	// Credentials are the connection credentials the step produced,
	// keyed by credential kind (e.g. "url", "token").
	Credentials map[string]string

	// Resources describes what was created.
	Resources []Resource

	// Compensation undoes this step. Nil when there is nothing to undo.
	Compensation *Compensation
}

// Resource describes one created platform resource.
type Resource struct {
	Name        string
	Environment string
	Status      string
}

// Compensation is a named compensating action. Modeled as a value rather
// than a bare closure so tests can assert which compensations were
// registered, and in what order, without executing their side effects.
type Compensation struct {
	// Name identifies the resource this compensation tears down.
	Name string

	// Undo reverses the step. Its failure is logged, never propagated.
	Undo func(ctx context.Context) error
}
