package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/termlinks/pkg/paths"
)

// TestEnvironment isolates configuration and state for one test
type TestEnvironment struct {
	ConfigDir string
	StateDir  string

	t *testing.T
}

// NewTestEnvironment points TERMLINKS_CONFIG_DIR and XDG_STATE_HOME at
// fresh temp directories and clears TERMLINKS_CONFIG
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
		t:         t,
	}

	if err := os.MkdirAll(env.ConfigDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvConfigFile, "")
	t.Setenv("XDG_STATE_HOME", env.StateDir)

	return env
}

// ConfigPath returns the path of name inside the config directory
func (e *TestEnvironment) ConfigPath(name string) string {
	return filepath.Join(e.ConfigDir, name)
}

// WriteConfig writes content to name inside the config directory and
// returns its path
func (e *TestEnvironment) WriteConfig(name, content string) string {
	e.t.Helper()

	path := e.ConfigPath(name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write config %s: %v", path, err)
	}
	return path
}
