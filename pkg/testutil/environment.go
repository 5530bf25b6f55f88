package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/paths"
)

// TestEnvironment is a temp directory standing in for the user's XDG dirs
type TestEnvironment struct {
	Root      string
	ConfigDir string
	CacheDir  string
	StateDir  string
	LogFile   string

	t *testing.T
}

// NewTestEnvironment points every tubesort directory and the log file at a
// fresh temp dir for the duration of the test
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		CacheDir:  filepath.Join(root, "cache"),
		StateDir:  filepath.Join(root, "state"),
		t:         t,
	}
	env.LogFile = filepath.Join(env.StateDir, paths.LogFileName)

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvCacheDir, env.CacheDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv(logging.EnvLogFile, env.LogFile)

	return env
}

// WriteFile writes content to name under Root and returns its path
func (env *TestEnvironment) WriteFile(name, content string) string {
	env.t.Helper()

	path := filepath.Join(env.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// WriteConfig writes the user config file picked up by config.Load
func (env *TestEnvironment) WriteConfig(content string) string {
	env.t.Helper()
	return env.WriteFile(filepath.Join("config", "config.toml"), content)
}
