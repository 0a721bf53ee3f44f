// Package wizard provides the interactive configuration wizard for
// appforge init.
//
// It uses charmbracelet/huh to collect answers in question groups and
// returns a WizardResult. Use BuildConfig to turn the result into a
// config.Config and WriteConfig to generate the YAML file.
package wizard
