package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults_to_toml_in_config_dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)
		t.Setenv(EnvConfigFile, "")

		p := New("")
		assert.Equal(t, dir, p.ConfigDir())
		assert.Equal(t, filepath.Join(dir, "config.toml"), p.ConfigFile())
	})

	t.Run("finds_existing_yaml", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)
		t.Setenv(EnvConfigFile, "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("linker: {}\n"), 0644))

		assert.Equal(t, filepath.Join(dir, "config.yaml"), New("").ConfigFile())
	})

	t.Run("toml_wins_over_yaml", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)
		t.Setenv(EnvConfigFile, "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(""), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(""), 0644))

		assert.Equal(t, filepath.Join(dir, "config.toml"), New("").ConfigFile())
	})

	t.Run("env_file_override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, t.TempDir())
		t.Setenv(EnvConfigFile, "/etc/termlinks.toml")

		assert.Equal(t, "/etc/termlinks.toml", New("").ConfigFile())
	})

	t.Run("explicit_file_wins", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "/etc/termlinks.toml")

		assert.Equal(t, "/work/links.toml", New("/work/links.toml").ConfigFile())
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"~", home},
		{"~/links.toml", filepath.Join(home, "links.toml")},
		{"~other/links.toml", "~other/links.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandHome(tt.in))
		})
	}
}
