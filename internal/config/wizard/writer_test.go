package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/internal/config"
)

func TestWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "appforge.yaml")

	cfg := &config.Config{
		Project:      "test-app",
		Template:     "web",
		Environments: []string{"dev", "prod"},
		Database:     config.DatabaseConfig{Enabled: true, Organization: "acme", Group: "default"},
	}

	err := WriteConfig(cfg, outputPath)
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	assert.Contains(t, string(content), "# appforge project configuration")
	assert.Contains(t, string(content), "project: test-app")
	assert.Contains(t, string(content), "organization: acme")
}

func TestWriteConfigRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "appforge.yaml")

	cfg := BuildConfig(&WizardResult{
		ProjectName:    "round-trip",
		Template:       "api",
		Environments:   []string{"dev", "staging"},
		EnableDatabase: true,
		Organization:   "acme",
		Group:          "default",
		EnableBlob:     true,
		Region:         "us-west-2",
	})

	require.NoError(t, WriteConfig(cfg, outputPath))

	loaded, err := config.LoadFile(outputPath)
	require.NoError(t, err)

	assert.Equal(t, "round-trip", loaded.Project)
	assert.Equal(t, []string{"dev", "staging"}, loaded.Environments)
	assert.True(t, loaded.Database.Enabled)
	assert.Equal(t, "acme", loaded.Database.Organization)
	assert.True(t, loaded.Blob.Enabled)
	assert.Equal(t, "us-west-2", loaded.Blob.Region)
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "appforge.yaml")

	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("project: x\n"), 0600))
	assert.True(t, FileExists(path))
}

func TestConfirmOverwriteInjection(t *testing.T) {
	original := confirmOverwrite
	defer func() { confirmOverwrite = original }()

	confirmOverwrite = func(_ string) (bool, error) { return true, nil }

	ok, err := ConfirmOverwrite("some/path.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
}
