// Package config defines the appforge project configuration and its
// YAML loader.
//
// The configuration lives in appforge.yaml at the project root. It names
// the project, its environments, and which managed resources (database,
// blob storage) provisioning should create.
package config
