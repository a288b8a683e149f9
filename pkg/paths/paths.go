package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile points at an explicit configuration file
	EnvConfigFile = "TERMLINKS_CONFIG"

	// EnvConfigDir overrides the XDG config directory for termlinks
	EnvConfigDir = "TERMLINKS_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "termlinks"

	// DefaultConfigFile is the file created when no configuration exists yet
	DefaultConfigFile = "config.toml"
)

// configCandidates are probed in order inside the config directory
var configCandidates = []string{"config.toml", "config.yaml", "config.yml"}

// Paths resolves termlinks file locations
type Paths struct {
	configDir  string
	configFile string
}

// New resolves paths from the environment. An explicit configFile wins over
// TERMLINKS_CONFIG, which wins over the config directory lookup.
func New(configFile string) *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	switch {
	case configFile != "":
		p.configFile = expandHome(configFile)
	case os.Getenv(EnvConfigFile) != "":
		p.configFile = expandHome(os.Getenv(EnvConfigFile))
	default:
		p.configFile = findConfigFile(p.configDir)
	}

	return p
}

// ConfigDir returns the termlinks config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the configuration file path. The file may not exist.
func (p *Paths) ConfigFile() string {
	return p.configFile
}

// findConfigFile returns the first existing candidate in dir, or the default
// TOML path when none exists
func findConfigFile(dir string) string {
	for _, name := range configCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, DefaultConfigFile)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
