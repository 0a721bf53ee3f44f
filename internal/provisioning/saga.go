package provisioning

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the overall result of one provisioning run.
type Outcome struct {
	RunID   string
	Success bool
	Steps   []StepOutcome

	// FailedStep and Cause are set when Success is false.
	FailedStep string
	Cause      string

	// RollbackAttempted reports whether any compensation ran.
	RollbackAttempted bool

	// RollbackWarnings lists compensations that failed, for the caller's
	// manual cleanup instructions.
	RollbackWarnings []string
}

// StepOutcome is the recorded output of one executed step.
type StepOutcome struct {
	Name        string
	Skipped     bool
	Credentials map[string]string
	Resources   []Resource
}

// Execute runs the steps in declaration order, registering a compensation
// after each successful step and unwinding all registered compensations in
// reverse order on the first failure. Unexpected panics anywhere in the
// loop are caught once at this boundary and funneled through the same
// unwind, so rollback runs exactly once regardless of the failure's shape.
func Execute(ctx *Context, steps []Step) (outcome Outcome) {
	outcome.RunID = uuid.NewString()
	start := time.Now()

	var compensations []Compensation

	fail := func(step, cause string) {
		outcome.Success = false
		outcome.FailedStep = step
		outcome.Cause = cause
		outcome.RollbackAttempted = len(compensations) > 0
		outcome.RollbackWarnings = unwind(ctx, compensations)
	}

	defer func() {
		if r := recover(); r != nil {
			fail(outcome.FailedStep, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	ctx.Observer.Printf("Starting provisioning run %s with %d steps", outcome.RunID, len(steps))

	for i, step := range steps {
		name := step.Name()
		// Recorded before Provision so a panic inside the step is
		// attributed to it.
		outcome.FailedStep = name

		ctx.Observer.Event(Event{Type: EventStepStarted, Step: name,
			Message: fmt.Sprintf("step %d/%d", i+1, len(steps))})

		result, err := step.Provision(ctx)
		if err != nil {
			ctx.Observer.Event(Event{Type: EventStepFailed, Step: name, Message: err.Error()})
			fail(name, err.Error())
			return outcome
		}
		if result == nil {
			result = &StepResult{}
		}

		outcome.Steps = append(outcome.Steps, StepOutcome{
			Name:        name,
			Skipped:     result.Skipped,
			Credentials: result.Credentials,
			Resources:   result.Resources,
		})

		if result.Skipped {
			ctx.Observer.Event(Event{Type: EventStepSkipped, Step: name})
			continue
		}

		if result.Compensation != nil {
			compensations = append(compensations, *result.Compensation)
		}
		ctx.Observer.Event(Event{Type: EventStepCompleted, Step: name})
	}

	// Full success: the compensation stack is discarded, rollback never
	// runs after this point.
	outcome.Success = true
	outcome.FailedStep = ""
	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return outcome
}

// unwind executes compensations in strict reverse registration order.
// Each one is wrapped so its failure, panic included, is reported as a
// warning and never stops the remaining compensations.
func unwind(ctx *Context, compensations []Compensation) []string {
	if len(compensations) == 0 {
		return nil
	}

	ctx.Observer.Event(Event{Type: EventRollbackStarted,
		Message: fmt.Sprintf("rolling back %d compensations", len(compensations))})

	var warnings []string
	for i := len(compensations) - 1; i >= 0; i-- {
		comp := compensations[i]
		if err := runCompensation(ctx, comp); err != nil {
			warning := fmt.Sprintf("rollback of %s failed: %v", comp.Name, err)
			warnings = append(warnings, warning)
			ctx.Observer.Event(Event{Type: EventRollbackWarning, Resource: comp.Name, Message: err.Error()})
			continue
		}
		ctx.Observer.Event(Event{Type: EventRollbackCompensated, Resource: comp.Name})
	}
	return warnings
}

// runCompensation invokes one compensation, converting a panic into an error.
func runCompensation(ctx *Context, comp Compensation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()
	return comp.Undo(ctx)
}
