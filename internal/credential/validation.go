package credential

import (
	"context"

	"github.com/appforge/appforge/internal/platform/turso"
)

// Validity is the tri-state result of validating a stored token.
// It is deliberately not a boolean: collapsing Unknown into Invalid would
// let a transient network blip revoke a still-valid token.
type Validity int

const (
	// Valid means the control plane accepted the token.
	Valid Validity = iota
	// Invalid means the control plane definitively rejected it (401/404).
	Invalid
	// Unknown means validation could not complete; the token may still be
	// good and must not be destroyed.
	Unknown
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Unknown:
		return "unknown"
	default:
		return "unrecognized"
	}
}

// Validation is the outcome of one validation call. Err is set only for
// Unknown and carries the underlying failure.
type Validation struct {
	Validity Validity
	Err      error
}

// validate checks a token against the control plane and classifies the
// result.
func (m *Manager) validate(ctx context.Context, token string) Validation {
	err := m.api(token).ValidateToken(ctx)
	if err == nil {
		return Validation{Validity: Valid}
	}
	if turso.IsDefinitive(err) {
		return Validation{Validity: Invalid}
	}
	return Validation{Validity: Unknown, Err: err}
}
