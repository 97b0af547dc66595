// Package testutil provides shared test helpers for creating config files and vault fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a vault directory and a config file pointing at it.
// Returns the path to the generated config file and the vault directory.
func SetupTestConfig(t *testing.T, tmpDir string) (string, string) {
	t.Helper()

	vaultDir := filepath.Join(tmpDir, "vault")
	require.NoError(t, os.MkdirAll(vaultDir, 0755))

	configContent := fmt.Sprintf(`vault:
  directory: %s
flashcards:
  random_order: false
notes:
  review_tags: ["#review"]
`, vaultDir)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath, vaultDir
}

// CreateNote writes a note fixture at a slash separated path inside vaultDir.
func CreateNote(t *testing.T, vaultDir, notePath, content string) string {
	t.Helper()

	fullPath := filepath.Join(vaultDir, filepath.FromSlash(notePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
	return fullPath
}

// ReadNote returns the current content of a note fixture.
func ReadNote(t *testing.T, vaultDir, notePath string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(vaultDir, filepath.FromSlash(notePath)))
	require.NoError(t, err)
	return string(content)
}
