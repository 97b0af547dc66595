package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setConfigFile points the --config flag at cfgPath for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

// setupBrokenConfigFile creates a config file whose vault section is not valid YAML.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	return writeConfigFile(t, "vault:\n  directory: [unterminated\nflashcards:\n  tags: {{\n")
}

// setupInvalidConfigFile creates a well formed config file that fails validation: the
// vault exists but the algorithm is unknown.
func setupInvalidConfigFile(t *testing.T) string {
	t.Helper()
	vaultDir := t.TempDir()
	return writeConfigFile(t, fmt.Sprintf("vault:\n  directory: %s\nalgorithm:\n  name: sm18\n", vaultDir))
}
