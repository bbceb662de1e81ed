// Package util holds small path and test helpers shared across skillfoundry.
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory.
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigDir returns the skillfoundry configuration directory.
// XDG_CONFIG_HOME is honored; otherwise ~/.config/skillfoundry is used.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skillfoundry")
	}
	return filepath.Join(HomeDir(), ".config", "skillfoundry")
}

// DefaultSkillsDir is the project-relative directory new skills are created in.
const DefaultSkillsDir = ".claude/skills"

// ExpandPath expands a leading ~ to the home directory and resolves relative
// paths against baseDir. An empty path stays empty.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
