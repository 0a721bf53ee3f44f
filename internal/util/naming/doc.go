// Package naming provides consistent naming functions for provisioned
// platform resources.
//
// Databases follow the pattern {project}-{environment}, the blob bucket is
// {project}-storage, and the platform API token is appforge-{host} where
// {host} is the slugified local hostname. Deterministic names let a re-run
// find and revoke its own prior token and let destroy locate everything a
// project created.
package naming
