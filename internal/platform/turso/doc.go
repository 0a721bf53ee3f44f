// Package turso provides clients for the Turso platform: an HTTP client
// for the platform API (token lifecycle, database create/delete) and a
// thin wrapper around the turso CLI for the interactive login surface.
//
// API errors carry their HTTP status so callers can distinguish a
// definitive unauthorized/not-found response from a transient failure.
package turso
