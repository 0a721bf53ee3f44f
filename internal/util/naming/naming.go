package naming

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Naming functions for provisioned resources.
// All platform resources follow consistent naming patterns to enable
// easy identification and cleanup.

var invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Slug normalizes a name into lowercase alphanumeric-with-hyphens form
// accepted by the control plane.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = invalidChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// Database returns the database name for a project environment.
func Database(project, environment string) string {
	return fmt.Sprintf("%s-%s", Slug(project), Slug(environment))
}

// Bucket returns the blob storage bucket name for a project.
func Bucket(project string) string {
	return fmt.Sprintf("%s-storage", Slug(project))
}

// TokenName returns the deterministic platform API token name for this host.
// Re-runs on the same machine resolve to the same name, so stale tokens can
// be revoked before a new one is minted.
func TokenName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown-host"
	}
	// Hostnames may carry a domain suffix; only the first label matters.
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	return fmt.Sprintf("appforge-%s", Slug(host))
}
