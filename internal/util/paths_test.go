package util

import (
	"path/filepath"
	"testing"
)

func TestHomeDir(t *testing.T) {
	home := HomeDir()
	if home == "" {
		t.Error("HomeDir() returned empty string")
	}
	if !filepath.IsAbs(home) {
		t.Errorf("HomeDir() returned relative path: %s", home)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		AssertEqual(t, ConfigDir(), filepath.Join("/tmp/xdg", "skillfoundry"))
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		AssertEqual(t, ConfigDir(), filepath.Join(HomeDir(), ".config", "skillfoundry"))
	})
}

func TestExpandPath(t *testing.T) {
	home := HomeDir()

	tests := map[string]struct {
		path    string
		baseDir string
		want    string
	}{
		"empty":            {path: "", baseDir: "/base", want: ""},
		"tilde only":       {path: "~", baseDir: "/base", want: home},
		"tilde prefix":     {path: "~/skills", baseDir: "/base", want: filepath.Join(home, "skills")},
		"absolute":         {path: "/abs/skills/", baseDir: "/base", want: "/abs/skills"},
		"relative":         {path: ".claude/skills", baseDir: "/base", want: "/base/.claude/skills"},
		"relative no base": {path: "./skills", baseDir: "", want: "skills"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			AssertEqual(t, ExpandPath(tt.path, tt.baseDir), tt.want)
		})
	}
}
