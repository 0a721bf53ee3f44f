// Package credential manages the long-lived Turso platform API token used
// for provisioning.
//
// Ensure drives the full lifecycle: reuse a stored token that still
// validates, pause with a login-required outcome when the user must log in
// through the CLI, or revoke-and-mint a fresh scoped token and persist it.
// Validation is tri-state: only a definitive unauthorized/not-found
// response triggers regeneration; an unknown (network) failure leaves a
// possibly-valid token untouched.
package credential
