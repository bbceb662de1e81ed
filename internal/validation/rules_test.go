package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Order(t *testing.T) {
	var fields []string
	for _, r := range DefaultRegistry().Rules() {
		fields = append(fields, r.Field)
	}
	assert.Equal(t, []string{
		"name", "description", "license", "requirements", "metadata",
		"allowed-tools", "model", "hooks", "context", "argument-hint",
		"disable-model-invocation", "agent", "tools",
		"compatibility",
	}, fields)
}

func TestDefaultRegistry_Rules(t *testing.T) {
	r := DefaultRegistry()

	tests := map[string]struct {
		required bool
		max      int
		min      int
		warnMax  int
		class    Portability
	}{
		"name":          {required: true, max: 64},
		"description":   {required: true, max: 1024, min: 20},
		"license":       {warnMax: 200},
		"requirements":  {max: 500},
		"metadata":      {},
		"hooks":         {class: NonPortable},
		"compatibility": {class: Deprecated},
	}

	for field, tt := range tests {
		t.Run(field, func(t *testing.T) {
			rule, ok := r.Rule(field)
			require.True(t, ok)
			assert.Equal(t, tt.required, rule.Required)
			assert.Equal(t, tt.max, rule.MaxLength)
			assert.Equal(t, tt.min, rule.MinLength)
			assert.Equal(t, tt.warnMax, rule.WarnMaxLength)
			assert.Equal(t, tt.class, rule.Class)
		})
	}

	assert.False(t, r.Recognized("version"))
	assert.Same(t, NamePattern, mustRule(t, r, "name").Pattern)
}

func mustRule(t *testing.T, r *Registry, field string) FieldRule {
	t.Helper()
	rule, ok := r.Rule(field)
	require.True(t, ok, "rule %q", field)
	return rule
}

func TestRegistry_RulesIsACopy(t *testing.T) {
	r := DefaultRegistry()
	rules := r.Rules()
	rules[0].Required = false

	assert.True(t, mustRule(t, r, "name").Required, "mutating Rules() changed the registry")
}

func TestNewRegistryFromRules_ReplacesDuplicates(t *testing.T) {
	r := NewRegistryFromRules([]FieldRule{
		{Field: "name", Required: true},
		{Field: "license"},
		{Field: "name", MaxLength: 3},
	}, Thresholds{})

	rules := r.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "name", rules[0].Field)
	assert.Equal(t, 3, rules[0].MaxLength)
	assert.False(t, rules[0].Required)
}

func TestPortability_String(t *testing.T) {
	assert.Equal(t, "standard", Standard.String())
	assert.Equal(t, "non-portable", NonPortable.String())
	assert.Equal(t, "deprecated", Deprecated.String())
	assert.Equal(t, "unknown", Portability(9).String())
}

func TestDefaultThresholds(t *testing.T) {
	assert.Equal(t, Thresholds{
		NameMaxLength:         64,
		DescriptionMaxLength:  1024,
		DescriptionMinLength:  20,
		LicenseMaxLength:      200,
		RequirementsMaxLength: 500,
		BodyMaxLines:          500,
		BodyMaxTokens:         5000,
	}, DefaultThresholds())
	assert.Equal(t, DefaultThresholds(), DefaultRegistry().Thresholds())
}
