package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/appforge/appforge/internal/provisioning"
	"github.com/appforge/appforge/internal/util/prerequisites"
)

// RenderOutcome renders the result of one provisioning run.
func RenderOutcome(project string, outcome provisioning.Outcome) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("appforge: %s", project)))
	if outcome.Success {
		b.WriteString(" " + okStyle.Render("Provisioned"))
	} else {
		b.WriteString(" " + failedStyle.Render("Failed"))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("run %s", outcome.RunID)))
	b.WriteString("\n")

	if len(outcome.Steps) > 0 {
		b.WriteString(sectionStyle.Render("  Steps"))
		b.WriteString("\n")
		for _, step := range outcome.Steps {
			renderStep(&b, step)
		}
	}

	if !outcome.Success {
		renderFailure(&b, outcome)
	}

	return b.String()
}

func renderStep(b *strings.Builder, step provisioning.StepOutcome) {
	if step.Skipped {
		fmt.Fprintf(b, "  %s %s %s\n", dimStyle.Render(skipMark), step.Name, dimStyle.Render("skipped"))
		return
	}

	fmt.Fprintf(b, "  %s %s\n", okStyle.Render(checkMark), step.Name)
	for _, res := range step.Resources {
		fmt.Fprintf(b, "       %s\n", dimStyle.Render(fmt.Sprintf("%s (%s)", res.Name, res.Status)))
	}
	for _, key := range sortedKeys(step.Credentials) {
		value := step.Credentials[key]
		if key == "token" {
			value = maskSecret(value)
		}
		fmt.Fprintf(b, "       %s\n", dimStyle.Render(fmt.Sprintf("%s: %s", key, value)))
	}
}

func renderFailure(b *strings.Builder, outcome provisioning.Outcome) {
	b.WriteString(sectionStyle.Render("  Failure"))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s: %s\n", failedStyle.Render(crossMark), outcome.FailedStep, outcome.Cause)

	if outcome.RollbackAttempted {
		if len(outcome.RollbackWarnings) == 0 {
			fmt.Fprintf(b, "  %s\n", okStyle.Render("All previously created resources were rolled back."))
			return
		}
		fmt.Fprintf(b, "  %s\n", warningStyle.Render("Rollback left resources behind; clean up manually:"))
		for _, w := range outcome.RollbackWarnings {
			fmt.Fprintf(b, "  %s %s\n", warningStyle.Render(warnMark), w)
		}
	}
}

// RenderDestroyReport renders the result of a teardown run.
func RenderDestroyReport(project string, warnings []string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("appforge: %s", project)))
	if len(warnings) == 0 {
		b.WriteString(" " + okStyle.Render("Destroyed"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(" " + warningStyle.Render("Destroyed with warnings"))
	b.WriteString("\n")
	for _, w := range warnings {
		fmt.Fprintf(&b, "  %s %s\n", warningStyle.Render(warnMark), w)
	}
	return b.String()
}

// RenderDoctor renders prerequisite check results and the platform auth
// status line.
func RenderDoctor(results *prerequisites.CheckResults, authStatus string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("appforge doctor"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("  Tools"))
	b.WriteString("\n")
	for _, r := range results.Results {
		switch {
		case r.Found && r.Version != "":
			fmt.Fprintf(&b, "  %s %s %s\n", okStyle.Render(checkMark), r.Tool.Name, dimStyle.Render(r.Version))
		case r.Found:
			fmt.Fprintf(&b, "  %s %s\n", okStyle.Render(checkMark), r.Tool.Name)
		case r.Tool.Required:
			fmt.Fprintf(&b, "  %s %s %s\n", failedStyle.Render(crossMark), r.Tool.Name, dimStyle.Render(r.Tool.InstallURL))
		default:
			fmt.Fprintf(&b, "  %s %s %s\n", warningStyle.Render(warnMark), r.Tool.Name, dimStyle.Render("optional, not found"))
		}
	}

	b.WriteString(sectionStyle.Render("  Platform"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", authStatus)

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// maskSecret keeps a short prefix for recognition and hides the rest.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + strings.Repeat("*", 4)
}
