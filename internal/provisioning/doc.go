// Package provisioning contains the resource-provisioning orchestrator and
// the shared types its steps implement.
//
// The orchestrator runs a statically known sequence of steps (databases,
// then blob storage) strictly in order. After each successful step it
// pushes that step's compensating action onto a stack; when a later step
// fails, the stack unwinds in reverse order so the most recently created
// resource is torn down first. Compensations are best effort: a failing
// compensation is reported as a warning and never stops the remaining
// ones. A run that completes all steps discards the stack.
//
// The provisioning domain is organized into focused subpackages:
//   - database/ creates the per-environment managed databases
//   - blob/ creates the project blob-storage bucket
//   - destroy/ tears down previously provisioned resources
package provisioning
