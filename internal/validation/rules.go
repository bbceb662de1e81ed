package validation

import (
	"regexp"
	"slices"
)

// Portability classifies how a recognized field relates to the portable
// skill format.
type Portability int

const (
	// Standard fields are part of the portable format.
	Standard Portability = iota
	// NonPortable fields are tied to one host tool; their presence is a warning.
	NonPortable
	// Deprecated fields are not part of the format and have a replacement.
	Deprecated
)

// String returns the lowercase name of the class.
func (p Portability) String() string {
	switch p {
	case Standard:
		return "standard"
	case NonPortable:
		return "non-portable"
	case Deprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Recognized field names.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldLicense       = "license"
	FieldRequirements  = "requirements"
	FieldMetadata      = "metadata"
	FieldCompatibility = "compatibility"
)

// NamePattern is the lowercase-hyphen identifier rule for skill names.
var NamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// FieldRule constrains one recognized frontmatter field.
// Zero lengths mean "no limit".
type FieldRule struct {
	Field    string
	Required bool
	// MaxLength above which the value is an error.
	MaxLength int
	// MinLength below which a non-empty value draws a warning.
	MinLength int
	// WarnMaxLength above which the value draws a warning.
	WarnMaxLength int
	Pattern       *regexp.Regexp
	Class         Portability
	// Reason is the hint appended to diagnostics for this field. For
	// non-portable and deprecated fields it explains why the field is flagged.
	Reason string
}

// Thresholds are the adjustable limits behind the default rules.
type Thresholds struct {
	NameMaxLength         int `yaml:"name_max_length" toml:"name_max_length"`
	DescriptionMaxLength  int `yaml:"description_max_length" toml:"description_max_length"`
	DescriptionMinLength  int `yaml:"description_min_length" toml:"description_min_length"`
	LicenseMaxLength      int `yaml:"license_max_length" toml:"license_max_length"`
	RequirementsMaxLength int `yaml:"requirements_max_length" toml:"requirements_max_length"`
	BodyMaxLines          int `yaml:"body_max_lines" toml:"body_max_lines"`
	BodyMaxTokens         int `yaml:"body_max_tokens" toml:"body_max_tokens"`
}

// DefaultThresholds returns the limits of the Agent Skills format.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NameMaxLength:         64,
		DescriptionMaxLength:  1024,
		DescriptionMinLength:  20,
		LicenseMaxLength:      200,
		RequirementsMaxLength: 500,
		BodyMaxLines:          500,
		BodyMaxTokens:         5000,
	}
}

// nonPortableFields lists host-specific fields in report order.
var nonPortableFields = []struct{ field, reason string }{
	{"allowed-tools", "Claude Code only - move to metadata.claude-code.allowed-tools"},
	{"model", "Claude Code only - move to metadata.claude-code.model"},
	{"hooks", "Claude Code only - not portable"},
	{"context", "Claude Code only - not portable"},
	{"argument-hint", "Slash commands only - not applicable to skills"},
	{"disable-model-invocation", "Claude Code only - not applicable to portable skills"},
	{"agent", "VS Code prompts only - not applicable to skills"},
	{"tools", "VS Code prompts only - not applicable to skills"},
}

// Registry is an immutable, ordered set of field rules plus body thresholds.
// It is safe for concurrent use.
type Registry struct {
	rules      []FieldRule
	index      map[string]int
	thresholds Thresholds
}

// DefaultRegistry returns the registry built from DefaultThresholds.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultThresholds())
}

// NewRegistry builds the standard rule table with the given limits.
func NewRegistry(t Thresholds) *Registry {
	rules := []FieldRule{
		{
			Field:     FieldName,
			Required:  true,
			MaxLength: t.NameMaxLength,
			Pattern:   NamePattern,
			Reason:    "must be lowercase letters, numbers, and hyphens; cannot start/end with hyphen",
		},
		{
			Field:     FieldDescription,
			Required:  true,
			MaxLength: t.DescriptionMaxLength,
			MinLength: t.DescriptionMinLength,
			Reason:    "consider adding more detail about when to use this skill",
		},
		{
			Field:         FieldLicense,
			WarnMaxLength: t.LicenseMaxLength,
			Reason:        "consider using just the license name",
		},
		{
			Field:     FieldRequirements,
			MaxLength: t.RequirementsMaxLength,
		},
		{Field: FieldMetadata},
	}
	for _, np := range nonPortableFields {
		rules = append(rules, FieldRule{Field: np.field, Class: NonPortable, Reason: np.reason})
	}
	rules = append(rules, FieldRule{
		Field:  FieldCompatibility,
		Class:  Deprecated,
		Reason: "use 'requirements' instead",
	})
	return NewRegistryFromRules(rules, t)
}

// NewRegistryFromRules builds a registry from an explicit rule list, in the
// order given. The slice is copied. A later rule for the same field replaces
// an earlier one.
func NewRegistryFromRules(rules []FieldRule, t Thresholds) *Registry {
	r := &Registry{
		index:      make(map[string]int, len(rules)),
		thresholds: t,
	}
	for _, rule := range rules {
		if i, ok := r.index[rule.Field]; ok {
			r.rules[i] = rule
			continue
		}
		r.index[rule.Field] = len(r.rules)
		r.rules = append(r.rules, rule)
	}
	return r
}

// Rules returns a copy of the rules in evaluation order.
func (r *Registry) Rules() []FieldRule {
	return slices.Clone(r.rules)
}

// Rule returns the rule for field.
func (r *Registry) Rule(field string) (FieldRule, bool) {
	i, ok := r.index[field]
	if !ok {
		return FieldRule{}, false
	}
	return r.rules[i], true
}

// Thresholds returns the limits the registry was built with.
func (r *Registry) Thresholds() Thresholds {
	return r.thresholds
}

// Recognized reports whether field has a rule.
func (r *Registry) Recognized(field string) bool {
	_, ok := r.index[field]
	return ok
}
