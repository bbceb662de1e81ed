package e2e_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/skillfoundry/internal/e2e"
)

const description = "Generates release notes from git history. Use when preparing a release."

// TestVersionCommand verifies the version command works correctly.
func TestVersionCommand(t *testing.T) {
	h := e2e.NewHarness(t)

	result := h.Run("version")

	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "skillfoundry version")
}

// TestScaffoldThenValidate creates a skill and validates the result.
func TestScaffoldThenValidate(t *testing.T) {
	h := e2e.NewHarness(t)
	out := filepath.Join(h.HomeDir(), "skills")

	result := h.Run("new", "--output-dir", out, "--full", "--author", "e2e", "release-notes", description)
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "Created skill: "+filepath.Join(out, "release-notes"))
	e2e.AssertOutputContains(t, result, "Next steps:")

	skill := filepath.Join(out, "release-notes", "SKILL.md")
	e2e.AssertFileContains(t, skill, "name: release-notes")
	e2e.AssertFileContains(t, skill, "author: e2e")
	e2e.AssertFileContains(t, skill, "# Release Notes")

	result = h.Run("validate", out)
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputEquals(t, result, "✓ "+skill+"\n\nAll 1 file(s) valid and portable.\n")
}

// TestScaffoldRefusesExisting verifies a second scaffold of the same name fails.
func TestScaffoldRefusesExisting(t *testing.T) {
	h := e2e.NewHarness(t)
	out := filepath.Join(h.HomeDir(), "skills")

	e2e.AssertSuccess(t, h.Run("new", "--output-dir", out, "release-notes", description))

	result := h.Run("new", "--output-dir", out, "release-notes", description)
	e2e.AssertError(t, result)
	e2e.AssertExitCode(t, result, 1)
	e2e.AssertErrorContains(t, result, "already exists")
}

// TestScaffoldRejectsInvalidName verifies the name rule is enforced before
// anything is written.
func TestScaffoldRejectsInvalidName(t *testing.T) {
	h := e2e.NewHarness(t)
	out := filepath.Join(h.HomeDir(), "skills")

	result := h.Run("new", "--output-dir", out, "Release_Notes", description)
	e2e.AssertError(t, result)
	if _, err := os.Stat(out); err == nil {
		t.Errorf("expected %s not to be created", out)
	}
}

// TestPortabilityScenarios covers the compliant, non-portable and invalid
// documents end to end.
func TestPortabilityScenarios(t *testing.T) {
	h := e2e.NewHarness(t)
	f := h.SkillsFixture()

	portable := f.WriteSkill("portable", []string{
		"name: portable",
		"description: " + description,
		"license: MIT",
	}, "# Portable\n")
	hostSpecific := f.WriteSkill("host-specific", []string{
		"name: host-specific",
		"description: " + description,
		"allowed-tools: Read, Grep",
		"compatibility: claude-code",
	}, "# Host specific\n")
	invalid := f.WriteSkill("invalid", []string{
		"name: Invalid_Name",
		"description: short",
	}, "# Invalid\n")

	t.Run("portable", func(t *testing.T) {
		result := h.Run("validate", portable)
		e2e.AssertExitCode(t, result, 0)
		e2e.AssertOutputContains(t, result, "All 1 file(s) valid and portable.")
	})

	t.Run("host specific", func(t *testing.T) {
		result := h.Run("validate", hostSpecific)
		e2e.AssertExitCode(t, result, 2)
		e2e.AssertReported(t, result, "⚠", hostSpecific)
		e2e.AssertDiagnostic(t, result, "WARNING", "Non-portable field 'allowed-tools' at root level")
		e2e.AssertDiagnostic(t, result, "WARNING", "Field 'compatibility' is not in the Agent Skills spec")
	})

	t.Run("host specific strict", func(t *testing.T) {
		result := h.Run("validate", "--strict", hostSpecific)
		e2e.AssertExitCode(t, result, 1)
		e2e.AssertReported(t, result, "✗", hostSpecific)
	})

	t.Run("invalid", func(t *testing.T) {
		result := h.Run("validate", invalid)
		e2e.AssertExitCode(t, result, 1)
		e2e.AssertReported(t, result, "✗", invalid)
		e2e.AssertDiagnostic(t, result, "ERROR", "Invalid name 'Invalid_Name'")
		e2e.AssertDiagnostic(t, result, "WARNING", "Description is very short")
	})

	t.Run("whole directory quiet", func(t *testing.T) {
		result := h.Run("validate", "--quiet", f.Path(""))
		e2e.AssertExitCode(t, result, 1)
		e2e.AssertOutputNotContains(t, result, portable)
		e2e.AssertReported(t, result, "⚠", hostSpecific)
		e2e.AssertReported(t, result, "✗", invalid)
	})
}

// TestMalformedHeader verifies a file without frontmatter is a single error.
func TestMalformedHeader(t *testing.T) {
	h := e2e.NewHarness(t)
	f := h.SkillsFixture()
	path := f.WriteFile("broken/SKILL.md", "# No frontmatter here\n")

	result := h.Run("validate", path)

	e2e.AssertExitCode(t, result, 1)
	e2e.AssertOutputEquals(t, result, "✗ "+path+"\n   ERROR: malformed header: file must start with '---' (YAML frontmatter delimiter)\n")
}

// TestValidateJSONReport verifies the structured report through the CLI.
func TestValidateJSONReport(t *testing.T) {
	h := e2e.NewHarness(t)
	f := h.SkillsFixture()
	path := f.WriteSkill("modelled", []string{
		"name: modelled",
		"description: " + description,
		"model: opus",
	}, "# Modelled\n")

	result := h.Run("validate", "--format", "json", path)
	e2e.AssertExitCode(t, result, 2)

	var rep struct {
		Files []struct {
			Status string `json:"status"`
		} `json:"files"`
		Summary struct {
			Total   int `json:"total"`
			Warning int `json:"warning"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, result.Stdout)
	}
	if rep.Summary.Total != 1 || rep.Summary.Warning != 1 || rep.Files[0].Status != "warning" {
		t.Errorf("unexpected report: %+v", rep)
	}
}

// TestConfigFileThresholds verifies the default config file feeds the rules.
func TestConfigFileThresholds(t *testing.T) {
	h := e2e.NewHarness(t)

	e2e.AssertSuccess(t, h.Run("config", "--init"))
	e2e.AssertFileContains(t, h.ConfigPath(), "body_max_lines: 500")

	cfg := "validation:\n  description_min_length: 100\noutput:\n  format: markdown\n"
	if err := os.WriteFile(h.ConfigPath(), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	f := h.SkillsFixture()
	path := f.WriteSkill("terse", []string{"name: terse", "description: " + description}, "# Terse\n")

	result := h.Run("validate", path)
	e2e.AssertExitCode(t, result, 2)
	e2e.AssertOutputContains(t, result, "# Skill Validation Report")
	e2e.AssertOutputContains(t, result, "Description is very short")
}

// TestConfigShow verifies the effective config honours environment overrides.
func TestConfigShow(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SetEnv("SKILLFOUNDRY_VALIDATION_BODY_MAX_TOKENS", "1234")

	result := h.Run("config")

	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "body_max_tokens: 1234")
	if !strings.Contains(result.Stdout, "scaffold:") {
		t.Errorf("expected scaffold section, got:\n%s", result.Stdout)
	}
}
