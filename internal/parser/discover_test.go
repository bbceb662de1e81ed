package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/skillfoundry/internal/util"
)

func TestDiscoverFiles(t *testing.T) {
	tempDir := util.CreateTempDir(t)

	for _, file := range []string{
		"SKILL.md",
		"api-client/SKILL.md",
		"api-client/references/DETAILS.md",
		"nested/deeper/data-sync/SKILL.md",
		"notes.txt",
	} {
		util.WriteFile(t, filepath.Join(tempDir, file), "---\nname: x\n---\n")
	}

	tests := map[string]struct {
		baseDir  string
		patterns []string
		want     []string
	}{
		"skill patterns find every depth": {
			baseDir:  tempDir,
			patterns: SkillPatterns,
			want:     []string{"SKILL.md", "api-client/SKILL.md", "nested/deeper/data-sync/SKILL.md"},
		},
		"top level only": {
			baseDir:  tempDir,
			patterns: []string{SkillFileName},
			want:     []string{"SKILL.md"},
		},
		"recursive markdown": {
			baseDir:  tempDir,
			patterns: []string{"**/*.md"},
			want: []string{
				"SKILL.md",
				"api-client/SKILL.md",
				"api-client/references/DETAILS.md",
				"nested/deeper/data-sync/SKILL.md",
			},
		},
		"no matches": {
			baseDir:  tempDir,
			patterns: []string{"*.json"},
			want:     nil,
		},
		"nonexistent directory": {
			baseDir:  filepath.Join(tempDir, "nonexistent"),
			patterns: SkillPatterns,
			want:     nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := DiscoverFiles(tt.baseDir, tt.patterns)
			if err != nil {
				t.Fatalf("DiscoverFiles() error = %v", err)
			}

			var rel []string
			for _, abs := range got {
				r, err := filepath.Rel(tt.baseDir, abs)
				if err != nil {
					t.Fatalf("failed to get relative path: %v", err)
				}
				rel = append(rel, filepath.ToSlash(r))
			}

			if len(rel) != len(tt.want) {
				t.Fatalf("DiscoverFiles() returned %d files, want %d\ngot: %v\nwant: %v", len(rel), len(tt.want), rel, tt.want)
			}
			for i := range rel {
				if rel[i] != tt.want[i] {
					t.Errorf("file[%d] = %q, want %q", i, rel[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	tempDir := util.CreateTempDir(t)
	util.WriteFile(t, filepath.Join(tempDir, "a", "SKILL.md"), "x")

	if _, err := DiscoverFiles(tempDir, []string{"**/a/**/SKILL.md"}); err == nil {
		t.Error("expected error for pattern with two ** segments")
	}
}

func TestDiscoverFiles_FollowsSymlinks(t *testing.T) {
	tempDir := util.CreateTempDir(t)
	target := filepath.Join(tempDir, "real", "linked-skill")
	util.WriteFile(t, filepath.Join(target, SkillFileName), "x")

	skillsDir := filepath.Join(tempDir, "skills")
	if err := os.MkdirAll(skillsDir, 0o750); err != nil {
		t.Fatalf("failed to create skills dir: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(skillsDir, "linked-skill")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := DiscoverFiles(skillsDir, SkillPatterns)
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}
	if len(got) != 1 || filepath.Base(filepath.Dir(got[0])) != "linked-skill" {
		t.Errorf("DiscoverFiles() = %v, want the symlinked skill", got)
	}
}
