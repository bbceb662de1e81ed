package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauern/skillfoundry/internal/template"
	"github.com/klauern/skillfoundry/internal/validation"
)

const testDescription = "Extract text from PDF files. Use when the user mentions PDFs."

func TestNewCommand(t *testing.T) {
	tests := map[string]struct {
		flags     []string
		wantFiles []string
	}{
		"minimal": {
			wantFiles: []string{"SKILL.md"},
		},
		"with scripts": {
			flags:     []string{"--with-scripts"},
			wantFiles: []string{"SKILL.md", "scripts/helper.py"},
		},
		"with refs": {
			flags:     []string{"--with-refs"},
			wantFiles: []string{"SKILL.md", "references/DETAILS.md"},
		},
		"full": {
			flags:     []string{"--full", "--author", "jane"},
			wantFiles: []string{"SKILL.md", "references/DETAILS.md", "scripts/helper.py"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"new", "--output-dir", dir}, tt.flags...)
			args = append(args, "pdf-tools", testDescription)

			out, _, err := runCLI(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Created skill: "+filepath.Join(dir, "pdf-tools"))
			assert.Contains(t, out, "\nFiles created:\n")
			assert.Contains(t, out, "  2. Validate: skillfoundry validate "+filepath.Join(dir, "pdf-tools", "SKILL.md")+"\n")

			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(dir, "pdf-tools", filepath.FromSlash(f)))
				assert.Contains(t, out, "   "+filepath.FromSlash(f)+"\n")
			}
		})
	}
}

func TestNewCommandOutputValidates(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "new", "--output-dir", dir, "--full", "pdf-tools", testDescription)
	require.NoError(t, err)

	out, _, err := runCLI(t, "validate", filepath.Join(dir, "pdf-tools"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "All 1 file(s) valid and portable.")
}

func TestNewCommandAuthor(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "new", "--output-dir", dir, "--author", "jane", "pdf-tools", testDescription)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pdf-tools", "SKILL.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "author: jane")
	assert.Contains(t, string(data), "# Pdf Tools")
}

func TestNewCommandConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKILLFOUNDRY_SCAFFOLD_OUTPUT_DIR", dir)
	t.Setenv("SKILLFOUNDRY_SCAFFOLD_AUTHOR", "config-author")

	_, _, err := runCLI(t, "new", "pdf-tools", testDescription)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pdf-tools", "SKILL.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "author: config-author")
}

func TestNewCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, "new", "--output-dir", dir, "--dry-run", "pdf-tools", testDescription)
	require.NoError(t, err)

	assert.Contains(t, out, "Would create: "+filepath.Join(dir, "pdf-tools", "SKILL.md"))
	assert.Contains(t, out, "name: pdf-tools")
	assert.NoDirExists(t, filepath.Join(dir, "pdf-tools"))
}

func TestNewCommandTemplateFile(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "custom.md")
	require.NoError(t, os.WriteFile(tmpl, []byte("---\nname: {{.Name}}\ndescription: {{.Description}}\n---\n\nCustom body for {{.Title}}\n"), 0o600))

	out, _, err := runCLI(t, "new", "--output-dir", dir, "--template-file", tmpl, "--dry-run", "pdf-tools", testDescription)
	require.NoError(t, err)
	assert.Contains(t, out, "Custom body for Pdf Tools")
}

func TestNewCommandErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "taken"), 0o750))

	tests := map[string]struct {
		args   []string
		target error
	}{
		"no arguments": {
			args: []string{"new", "--output-dir", dir},
		},
		"too many arguments": {
			args: []string{"new", "--output-dir", dir, "pdf-tools", testDescription, "extra"},
		},
		"missing description": {
			args:   []string{"new", "--output-dir", dir, "pdf-tools"},
			target: template.ErrInvalidDescription,
		},
		"blank description": {
			args:   []string{"new", "--output-dir", dir, "pdf-tools", "   "},
			target: template.ErrInvalidDescription,
		},
		"invalid name": {
			args:   []string{"new", "--output-dir", dir, "PDF_Tools", testDescription},
			target: validation.ErrInvalidName,
		},
		"empty description": {
			args:   []string{"new", "--output-dir", dir, "pdf-tools", ""},
			target: template.ErrInvalidDescription,
		},
		"existing directory": {
			args:   []string{"new", "--output-dir", dir, "taken", testDescription},
			target: template.ErrSkillExists,
		},
		"missing template file": {
			args: []string{"new", "--output-dir", dir, "--template-file", filepath.Join(dir, "nope.md"), "pdf-tools", testDescription},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Equal(t, 1, ExitCode(err))
		})
	}
}
