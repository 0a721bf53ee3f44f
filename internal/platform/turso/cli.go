package turso

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolNotInstalled indicates the turso CLI binary is not in PATH.
// This is fatal and user-actionable: nothing on the platform was touched.
var ErrToolNotInstalled = errors.New("turso CLI is not installed (see https://docs.turso.tech/cli/installation)")

// execCommand is swapped in tests.
var execCommand = exec.CommandContext

// CLI wraps the turso command-line tool for the auth surface that cannot
// be driven over the HTTP API.
type CLI struct {
	binary string
}

// NewCLI creates a CLI wrapper for the turso binary.
func NewCLI() *CLI {
	return &CLI{binary: "turso"}
}

// AuthStatus probes the CLI login state non-interactively.
// A non-zero exit or unparseable output means not logged in; a missing
// binary is reported as ErrToolNotInstalled.
func (c *CLI) AuthStatus(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "auth", "status")
	if err != nil {
		if errors.Is(err, ErrToolNotInstalled) {
			return false, err
		}
		// The CLI exits non-zero when logged out.
		return false, nil
	}

	status := strings.ToLower(out)
	if strings.Contains(status, "not logged in") {
		return false, nil
	}
	return strings.Contains(status, "logged in"), nil
}

// AuthToken retrieves the management-scoped bearer token for the logged-in
// user from CLI stdout, trimmed.
func (c *CLI) AuthToken(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "auth", "token")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run executes the binary and returns stdout. A process-spawn "no such
// file" error maps to ErrToolNotInstalled.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := execCommand(ctx, c.binary, args...) // #nosec G204 - fixed binary and args
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", ErrToolNotInstalled
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("turso %s failed: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}
