package provisioning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver captures log lines and events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	lines  []string
	events []Event
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) eventTypes() []EventType {
	o.mu.Lock()
	defer o.mu.Unlock()
	types := make([]EventType, 0, len(o.events))
	for _, e := range o.events {
		types = append(types, e.Type)
	}
	return types
}

// stepFunc adapts a function to the Step interface.
type stepFunc struct {
	name string
	fn   func(ctx *Context) (*StepResult, error)
}

func (s *stepFunc) Name() string                                { return s.name }
func (s *stepFunc) Provision(ctx *Context) (*StepResult, error) { return s.fn(ctx) }

func newTestContext() (*Context, *recordingObserver) {
	observer := &recordingObserver{}
	return NewContext(context.Background(), nil, observer), observer
}

// okStep returns a successful step whose compensation appends its name to undone.
func okStep(name string, undone *[]string) Step {
	return &stepFunc{name: name, fn: func(_ *Context) (*StepResult, error) {
		return &StepResult{
			Resources: []Resource{{Name: name, Status: "created"}},
			Compensation: &Compensation{
				Name: "delete " + name,
				Undo: func(_ context.Context) error {
					*undone = append(*undone, name)
					return nil
				},
			},
		}, nil
	}}
}

func failStep(name string, err error) Step {
	return &stepFunc{name: name, fn: func(_ *Context) (*StepResult, error) {
		return nil, err
	}}
}

func TestExecuteAllSuccess(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()
	var undone []string

	outcome := Execute(ctx, []Step{okStep("database", &undone), okStep("blob", &undone)})

	assert.True(t, outcome.Success)
	assert.NotEmpty(t, outcome.RunID)
	assert.Empty(t, outcome.FailedStep)
	assert.False(t, outcome.RollbackAttempted)
	require.Len(t, outcome.Steps, 2)
	assert.Equal(t, "database", outcome.Steps[0].Name)
	assert.Equal(t, "blob", outcome.Steps[1].Name)

	// Rollback never runs after full success.
	assert.Empty(t, undone)
}

func TestExecuteFailureRollsBackInReverseOrder(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()
	var undone []string

	steps := []Step{
		okStep("database-dev", &undone),
		okStep("database-staging", &undone),
		okStep("database-prod", &undone),
		failStep("blob", errors.New("bucket quota exceeded")),
	}

	outcome := Execute(ctx, steps)

	assert.False(t, outcome.Success)
	assert.Equal(t, "blob", outcome.FailedStep)
	assert.Contains(t, outcome.Cause, "bucket quota exceeded")
	assert.True(t, outcome.RollbackAttempted)

	// Compensations run in strict reverse registration order.
	assert.Equal(t, []string{"database-prod", "database-staging", "database-dev"}, undone)
}

func TestExecuteFirstStepFailureNeedsNoRollback(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()

	outcome := Execute(ctx, []Step{failStep("database", errors.New("unreachable"))})

	assert.False(t, outcome.Success)
	assert.Equal(t, "database", outcome.FailedStep)
	assert.False(t, outcome.RollbackAttempted)
	assert.Empty(t, outcome.RollbackWarnings)
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()
	var undone []string
	executed := false

	steps := []Step{
		okStep("database", &undone),
		failStep("blob", errors.New("boom")),
		&stepFunc{name: "never", fn: func(_ *Context) (*StepResult, error) {
			executed = true
			return &StepResult{}, nil
		}},
	}

	outcome := Execute(ctx, steps)

	assert.False(t, outcome.Success)
	assert.False(t, executed, "steps after the failure must not run")
	assert.Equal(t, []string{"database"}, undone)
}

func TestExecuteSkippedStepRegistersNoCompensation(t *testing.T) {
	t.Parallel()

	ctx, observer := newTestContext()
	var undone []string

	skipped := &stepFunc{name: "database", fn: func(_ *Context) (*StepResult, error) {
		return &StepResult{
			Skipped: true,
			Compensation: &Compensation{Name: "must-not-run", Undo: func(_ context.Context) error {
				undone = append(undone, "skipped-step")
				return nil
			}},
		}, nil
	}}

	outcome := Execute(ctx, []Step{skipped, failStep("blob", errors.New("boom"))})

	assert.False(t, outcome.Success)
	assert.False(t, outcome.RollbackAttempted)
	assert.Empty(t, undone)
	assert.Contains(t, observer.eventTypes(), EventStepSkipped)
	require.Len(t, outcome.Steps, 1)
	assert.True(t, outcome.Steps[0].Skipped)
}

func TestExecuteCompensationFailureDoesNotAbortRemaining(t *testing.T) {
	t.Parallel()

	ctx, observer := newTestContext()
	var undone []string

	brokenComp := &stepFunc{name: "database-staging", fn: func(_ *Context) (*StepResult, error) {
		return &StepResult{
			Compensation: &Compensation{Name: "delete database-staging", Undo: func(_ context.Context) error {
				return errors.New("already locked")
			}},
		}, nil
	}}

	steps := []Step{
		okStep("database-dev", &undone),
		brokenComp,
		failStep("blob", errors.New("boom")),
	}

	outcome := Execute(ctx, steps)

	assert.False(t, outcome.Success)
	assert.True(t, outcome.RollbackAttempted)
	// The earlier compensation still ran despite the later one failing.
	assert.Equal(t, []string{"database-dev"}, undone)
	require.Len(t, outcome.RollbackWarnings, 1)
	assert.Contains(t, outcome.RollbackWarnings[0], "database-staging")
	assert.Contains(t, observer.eventTypes(), EventRollbackWarning)
}

func TestExecutePanicTriggersSingleRollback(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()
	var undone []string

	panicking := &stepFunc{name: "blob", fn: func(_ *Context) (*StepResult, error) {
		panic("nil pointer somewhere")
	}}

	outcome := Execute(ctx, []Step{okStep("database", &undone), panicking})

	assert.False(t, outcome.Success)
	assert.Equal(t, "blob", outcome.FailedStep)
	assert.Contains(t, outcome.Cause, "nil pointer somewhere")
	assert.True(t, outcome.RollbackAttempted)
	assert.Equal(t, []string{"database"}, undone, "rollback must run exactly once")
}

func TestExecutePanicInCompensationIsWarning(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()
	var undone []string

	panickingComp := &stepFunc{name: "database-staging", fn: func(_ *Context) (*StepResult, error) {
		return &StepResult{
			Compensation: &Compensation{Name: "delete database-staging", Undo: func(_ context.Context) error {
				panic("boom")
			}},
		}, nil
	}}

	steps := []Step{
		okStep("database-dev", &undone),
		panickingComp,
		failStep("blob", errors.New("fail")),
	}

	outcome := Execute(ctx, steps)

	require.Len(t, outcome.RollbackWarnings, 1)
	assert.Contains(t, outcome.RollbackWarnings[0], "database-staging")
	assert.Equal(t, []string{"database-dev"}, undone)
}

func TestExecuteStepCredentialsRecorded(t *testing.T) {
	t.Parallel()

	ctx, _ := newTestContext()

	step := &stepFunc{name: "database", fn: func(_ *Context) (*StepResult, error) {
		return &StepResult{
			Credentials: map[string]string{"url": "libsql://x", "token": "jwt"},
			Resources:   []Resource{{Name: "my-app-dev", Environment: "dev", Status: "created"}},
		}, nil
	}}

	outcome := Execute(ctx, []Step{step})

	require.True(t, outcome.Success)
	require.Len(t, outcome.Steps, 1)
	assert.Equal(t, "libsql://x", outcome.Steps[0].Credentials["url"])
	require.Len(t, outcome.Steps[0].Resources, 1)
	assert.Equal(t, "dev", outcome.Steps[0].Resources[0].Environment)
}
