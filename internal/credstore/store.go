package credstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// appDir is the directory under the user config root.
	appDir = "appforge"

	// fileName is the credential file name inside appDir.
	fileName = "credentials.json"

	// SectionTurso is the recognized section holding the Turso platform token.
	SectionTurso = "turso"

	// KeyAccessKey is the token key inside a platform section.
	KeyAccessKey = "access_key"
)

// configDir is a function variable so tests can redirect the store to a
// temporary directory.
var configDir = defaultConfigDir

func defaultConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return dir, nil
}

// Load ensures the per-user credential file exists and returns its path and
// parsed contents. A missing file is created as an empty JSON document.
func Load() (string, map[string]any, error) {
	root, err := configDir()
	if err != nil {
		return "", nil, err
	}

	dir := filepath.Join(root, appDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", nil, fmt.Errorf("failed to create config dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, fileName)
	data, err := os.ReadFile(path) // #nosec G304
	if os.IsNotExist(err) {
		doc := map[string]any{}
		if err := Save(path, doc); err != nil {
			return "", nil, err
		}
		return path, doc, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	doc := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return "", nil, fmt.Errorf("failed to parse credential file %s: %w", path, err)
		}
	}
	return path, doc, nil
}

// Save writes the document to path with stable 4-space-indented formatting
// and a trailing newline. The write is atomic: data goes to a sibling temp
// file which is renamed over the destination.
func Save(path string, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), fileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace credential file: %w", err)
	}
	return nil
}

// AccessKey extracts the stored token for a platform section, if present.
func AccessKey(doc map[string]any, section string) (string, bool) {
	raw, ok := doc[section]
	if !ok {
		return "", false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	key, ok := m[KeyAccessKey].(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// SetAccessKey sets the token for a platform section, preserving any other
// keys already present in that section.
func SetAccessKey(doc map[string]any, section, token string) {
	m, ok := doc[section].(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	m[KeyAccessKey] = token
	doc[section] = m
}
