package handlers

import (
	"context"
	"fmt"

	"github.com/appforge/appforge/internal/platform/turso"
	"github.com/appforge/appforge/internal/ui/tui"
	"github.com/appforge/appforge/internal/util/prerequisites"
)

// LoginProbe is the CLI slice doctor uses to report the login state.
type LoginProbe interface {
	AuthStatus(ctx context.Context) (bool, error)
}

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkAllPrereqs checks required and optional tools.
	checkAllPrereqs = prerequisites.CheckAll

	// newLoginProbe creates the CLI login probe.
	newLoginProbe = func() LoginProbe {
		return turso.NewCLI()
	}
)

// Doctor handles the doctor command.
//
// It checks client tools, validates the configuration file if one is
// present, and reports the platform login state. Missing required tools
// make the command fail; everything else is informational.
func Doctor(ctx context.Context, configPath string) error {
	results := checkAllPrereqs()

	authStatus := probeAuthStatus(ctx)

	fmt.Println(tui.RenderDoctor(results, authStatus))

	if configPath == "" {
		configPath = defaultConfigFile
	}
	if fileExists(configPath) {
		if _, err := loadConfig(configPath); err != nil {
			return fmt.Errorf("config check failed: %w", err)
		}
		fmt.Printf("Config %s is valid.\n", configPath)
	} else {
		fmt.Printf("No config file at %s. Run 'appforge init' to create one.\n", configPath)
	}

	return results.Error()
}

// probeAuthStatus describes the platform login state in one line.
func probeAuthStatus(ctx context.Context) string {
	loggedIn, err := newLoginProbe().AuthStatus(ctx)
	switch {
	case err != nil:
		return fmt.Sprintf("login state unknown: %v", err)
	case loggedIn:
		return "logged in to the turso CLI"
	default:
		return "not logged in; run 'turso auth login'"
	}
}
