package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SkillFileName is the conventional file name of a skill document.
const SkillFileName = "SKILL.md"

// SkillPatterns are the DiscoverFiles patterns that find skill documents at
// any depth below a directory.
var SkillPatterns = []string{SkillFileName, "**/" + SkillFileName}

// DiscoverFiles finds all files matching the given patterns in a directory.
// Patterns are glob patterns relative to baseDir; a single "**" segment
// matches any depth. Symlinked directories are followed once.
// Returns sorted absolute paths. A missing baseDir yields no files.
func DiscoverFiles(baseDir string, patterns []string) ([]string, error) {
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat directory %q: %w", baseDir, err)
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for %q: %w", path, err)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, pattern := range patterns {
		if strings.Contains(pattern, "**") {
			matches, err := walkMatch(baseDir, pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to walk pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				if err := add(m); err != nil {
					return nil, err
				}
			}
			continue
		}

		matches, err := filepath.Glob(filepath.Join(baseDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

// walkMatch performs recursive matching for patterns containing "**".
func walkMatch(baseDir, pattern string) ([]string, error) {
	parts := strings.Split(pattern, "**")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid pattern %q: only one ** supported", pattern)
	}
	suffix := strings.TrimPrefix(parts[1], "/")

	var matches []string
	err := walkFollowSymlinks(baseDir, func(path string, info os.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		matched, err := filepath.Match(suffix, filepath.Base(path))
		if err != nil || !matched {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return matches, nil
}

// walkFollowSymlinks walks a directory tree, following symlinks to
// directories. Visited real paths are tracked to break cycles.
func walkFollowSymlinks(root string, walkFn func(path string, info os.FileInfo) error) error {
	visited := make(map[string]bool)
	return walkFollowSymlinksImpl(root, visited, walkFn)
}

func walkFollowSymlinksImpl(path string, visited map[string]bool, walkFn func(path string, info os.FileInfo) error) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}
	if visited[realPath] {
		return nil
	}
	visited[realPath] = true

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if err := walkFn(path, info); err != nil {
		return err
	}

	if !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if err := walkFollowSymlinksImpl(filepath.Join(path, entry.Name()), visited, walkFn); err != nil {
			return err
		}
	}
	return nil
}
