package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/klauern/skillfoundry/internal/logging"
	"github.com/klauern/skillfoundry/internal/parser"
)

// Validator applies a Registry to skill documents. It holds no per-document
// state and may be shared between goroutines.
type Validator struct {
	registry *Registry
}

// New returns a Validator for registry. A nil registry selects
// DefaultRegistry.
func New(registry *Registry) *Validator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Validator{registry: registry}
}

// Registry returns the rules the validator applies.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Validate checks the raw text of a skill document. A malformed header
// yields a Result with that single error and nothing else; otherwise field
// diagnostics come first, followed by body warnings.
func (v *Validator) Validate(content string) Result {
	fm, body, err := parser.Extract(content)
	if err != nil {
		var res Result
		res.addError("", "%s", err)
		return res
	}

	res := v.ValidateFields(fm)
	res.Warnings = append(res.Warnings, v.AnalyzeBody(body)...)
	return res
}

// ValidateFields applies the field rules to a parsed header. Required fields
// are checked first, then every other rule in registry order. A missing
// required field produces exactly one error; a missing optional field
// produces nothing.
func (v *Validator) ValidateFields(fm *parser.Frontmatter) Result {
	var res Result
	for _, rule := range v.registry.rules {
		if rule.Required {
			checkField(rule, fm, &res)
		}
	}
	for _, rule := range v.registry.rules {
		if !rule.Required {
			checkField(rule, fm, &res)
		}
	}
	return res
}

func checkField(rule FieldRule, fm *parser.Frontmatter, res *Result) {
	value, ok := fm.Get(rule.Field)
	if !ok {
		if rule.Required {
			res.addError(rule.Field, "Missing required field: %s", rule.Field)
		}
		return
	}

	switch rule.Class {
	case NonPortable:
		res.addWarning(rule.Field, "Non-portable field '%s' at root level: %s", rule.Field, rule.Reason)
	case Deprecated:
		res.addWarning(rule.Field, "Field '%s' is not in the Agent Skills spec; %s", rule.Field, rule.Reason)
	default:
		d, found := rule.check(value)
		if !found {
			return
		}
		logging.Debug("field rule failed",
			logging.Field(rule.Field),
			logging.Severity(d.Severity.String()),
		)
		if d.Severity == SeverityError {
			res.Errors = append(res.Errors, d)
		} else {
			res.Warnings = append(res.Warnings, d)
		}
	}
}

// check evaluates the value constraints of a standard rule against a present
// value. At most one diagnostic is produced, the first failing check in the
// order: empty, too long, pattern, too short, unusually long.
func (rule FieldRule) check(value string) (Diagnostic, bool) {
	label := fieldLabel(rule.Field)
	n := utf8.RuneCountInString(value)

	var res Result
	switch {
	case value == "":
		if rule.Required {
			res.addError(rule.Field, "Field '%s' cannot be empty", rule.Field)
		}
	case rule.MaxLength > 0 && n > rule.MaxLength:
		res.addError(rule.Field, "%s too long (%d chars): maximum %d characters", label, n, rule.MaxLength)
	case rule.Pattern != nil && !rule.Pattern.MatchString(value):
		reason := rule.Reason
		if reason == "" {
			reason = "must match " + rule.Pattern.String()
		}
		res.addError(rule.Field, "Invalid %s '%s': %s", rule.Field, value, reason)
	case rule.MinLength > 0 && n < rule.MinLength:
		res.addWarning(rule.Field, "%s is very short (%d chars): %s", label, n, rule.Reason)
	case rule.WarnMaxLength > 0 && n > rule.WarnMaxLength:
		res.addWarning(rule.Field, "%s field is unusually long; %s", label, rule.Reason)
	}

	switch {
	case len(res.Errors) > 0:
		return res.Errors[0], true
	case len(res.Warnings) > 0:
		return res.Warnings[0], true
	default:
		return Diagnostic{}, false
	}
}

// fieldLabel capitalizes a field name for the start of a message.
func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
