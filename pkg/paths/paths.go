package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	EnvConfigDir = "TUBESORT_CONFIG_DIR"
	EnvCacheDir  = "TUBESORT_CACHE_DIR"
	EnvStateDir  = "TUBESORT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory created under each XDG base dir
	AppDirName = "tubesort"

	// LogFileName is the name of the log file
	LogFileName = "tubesort.log"
)

// ConfigFileNames are the user config files looked up in ConfigDir, in order
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Paths resolves tubesort's directories
type Paths interface {
	ConfigDir() string
	CacheDir() string
	StateDir() string
	LogFilePath() string
	UserConfigFile() string
}

type paths struct {
	config string
	cache  string
	state  string
}

// New resolves the directories from the environment at call time
func New() Paths {
	return &paths{
		config: resolve(EnvConfigDir, "XDG_CONFIG_HOME", xdg.ConfigHome),
		cache:  resolve(EnvCacheDir, "XDG_CACHE_HOME", xdg.CacheHome),
		state:  resolve(EnvStateDir, "XDG_STATE_HOME", xdg.StateHome),
	}
}

// resolve prefers the tubesort override, then the XDG variable as currently
// set, then the value xdg computed at startup
func resolve(override, xdgVar, fallback string) string {
	if dir := os.Getenv(override); dir != "" {
		return ExpandHome(dir)
	}
	if base := os.Getenv(xdgVar); base != "" {
		return filepath.Join(ExpandHome(base), AppDirName)
	}
	return filepath.Join(fallback, AppDirName)
}

func (p *paths) ConfigDir() string { return p.config }

func (p *paths) CacheDir() string { return p.cache }

func (p *paths) StateDir() string { return p.state }

// LogFilePath returns the path of the log file in the state directory
func (p *paths) LogFilePath() string {
	return filepath.Join(p.state, LogFileName)
}

// UserConfigFile returns the first existing config file in ConfigDir, or ""
func (p *paths) UserConfigFile() string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(p.config, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
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

	// ~user is left alone
	return path
}
