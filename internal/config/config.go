// Package config provides configuration management for skillfoundry.
// It supports YAML or TOML configuration files, environment variables, and
// defaults that match the Agent Skills format limits.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/skillfoundry/internal/util"
	"github.com/klauern/skillfoundry/internal/validation"
)

// Config represents the complete skillfoundry configuration.
type Config struct {
	// Validation configures rule thresholds and batch behavior
	Validation ValidationConfig `yaml:"validation" toml:"validation"`

	// Scaffold configures defaults for new skills
	Scaffold ScaffoldConfig `yaml:"scaffold" toml:"scaffold"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output"`
}

// ValidationConfig holds validation thresholds and batch settings.
type ValidationConfig struct {
	validation.Thresholds `yaml:",inline"`

	// Strict treats warnings as errors
	Strict bool `yaml:"strict" toml:"strict"`
	// Jobs is the number of files validated concurrently
	Jobs int `yaml:"jobs" toml:"jobs"`
}

// ScaffoldConfig holds defaults for the new command.
type ScaffoldConfig struct {
	// OutputDir is the base directory new skills are created in
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	// Author is written to the metadata of new skills
	Author string `yaml:"author" toml:"author"`
	// WithScripts creates scripts/ by default
	WithScripts bool `yaml:"with_scripts" toml:"with_scripts"`
	// WithRefs creates references/ by default
	WithRefs bool `yaml:"with_refs" toml:"with_refs"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the report format (text, json, yaml, markdown)
	Format string `yaml:"format" toml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
	// Quiet only prints files with errors or warnings
	Quiet bool `yaml:"quiet" toml:"quiet"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Validation: ValidationConfig{
			Thresholds: validation.DefaultThresholds(),
			Jobs:       4,
		},
		Scaffold: ScaffoldConfig{
			OutputDir: util.DefaultSkillsDir,
			Author:    "your-name",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
	}
}

// configFileName is the name of the default config file.
const configFileName = "config.yaml"

// FilePath returns the path to the default config file.
func FilePath() string {
	return filepath.Join(util.ConfigDir(), configFileName)
}

// Load loads the configuration from path, merging with defaults and then
// applying environment overrides. An empty path selects FilePath, which may
// be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}

	cfg := Default()

	// #nosec G304 - path is the user's config file
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode parses data over cfg, choosing TOML or YAML by file extension.
func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Marshal encodes the configuration as YAML, or TOML when toTOML is set.
func (c *Config) Marshal(toTOML bool) ([]byte, error) {
	if toTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(c)
}

// SaveToPath writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := c.Marshal(isTOML(path))
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings that cannot be applied.
func (c *Config) Validate() error {
	for name, v := range c.thresholdFields() {
		if *v < 0 {
			return fmt.Errorf("validation.%s must not be negative", name)
		}
	}
	if c.Validation.Jobs < 0 {
		return fmt.Errorf("validation.jobs must not be negative")
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	return nil
}

// Thresholds returns the configured validation limits.
func (c *Config) Thresholds() validation.Thresholds {
	return c.Validation.Thresholds
}

// Registry builds the validation rule registry from the configured limits.
func (c *Config) Registry() *validation.Registry {
	return validation.NewRegistry(c.Thresholds())
}

// thresholdFields maps config key names to the threshold values.
func (c *Config) thresholdFields() map[string]*int {
	t := &c.Validation.Thresholds
	return map[string]*int{
		"name_max_length":         &t.NameMaxLength,
		"description_max_length":  &t.DescriptionMaxLength,
		"description_min_length":  &t.DescriptionMinLength,
		"license_max_length":      &t.LicenseMaxLength,
		"requirements_max_length": &t.RequirementsMaxLength,
		"body_max_lines":          &t.BodyMaxLines,
		"body_max_tokens":         &t.BodyMaxTokens,
	}
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SKILLFOUNDRY_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	for name, v := range c.thresholdFields() {
		if s := os.Getenv("SKILLFOUNDRY_VALIDATION_" + strings.ToUpper(name)); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				*v = n
			}
		}
	}
	if v := os.Getenv("SKILLFOUNDRY_VALIDATION_STRICT"); v != "" {
		c.Validation.Strict = parseBool(v)
	}
	if v := os.Getenv("SKILLFOUNDRY_VALIDATION_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Validation.Jobs = n
		}
	}

	if v := os.Getenv("SKILLFOUNDRY_SCAFFOLD_OUTPUT_DIR"); v != "" {
		c.Scaffold.OutputDir = v
	}
	if v := os.Getenv("SKILLFOUNDRY_SCAFFOLD_AUTHOR"); v != "" {
		c.Scaffold.Author = v
	}

	if v := os.Getenv("SKILLFOUNDRY_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("SKILLFOUNDRY_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("SKILLFOUNDRY_OUTPUT_QUIET"); v != "" {
		c.Output.Quiet = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
