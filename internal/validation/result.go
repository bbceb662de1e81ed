package validation

import (
	"fmt"
	"strings"
)

// Severity is the level of a Diagnostic.
type Severity int

const (
	// SeverityError marks a document as non-compliant.
	SeverityError Severity = iota
	// SeverityWarning marks a compliant document as non-portable or oversized.
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity by name for JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Diagnostic is a single error or warning.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	// Field is the frontmatter field concerned, empty for header and body
	// diagnostics.
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// String returns the diagnostic message.
func (d Diagnostic) String() string {
	return d.Message
}

// Result holds the diagnostics for one document, each list in evaluation
// order.
type Result struct {
	Errors   []Diagnostic `json:"errors" yaml:"errors"`
	Warnings []Diagnostic `json:"warnings" yaml:"warnings"`
}

func (r *Result) addError(field, format string, args ...any) {
	r.Errors = append(r.Errors, Diagnostic{
		Severity: SeverityError,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Result) addWarning(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors returns true if there are any errors.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Valid reports whether the document has no errors.
func (r Result) Valid() bool {
	return !r.HasErrors()
}

// Portable reports whether the document is valid and has no warnings.
func (r Result) Portable() bool {
	return r.Valid() && !r.HasWarnings()
}

// Strict returns a copy of r with every warning escalated to an error,
// appended after the existing errors.
func (r Result) Strict() Result {
	out := Result{Errors: make([]Diagnostic, 0, len(r.Errors)+len(r.Warnings))}
	out.Errors = append(out.Errors, r.Errors...)
	for _, w := range r.Warnings {
		w.Severity = SeverityError
		out.Errors = append(out.Errors, w)
	}
	return out
}

// Summary returns a human-readable summary of the result.
func (r Result) Summary() string {
	switch {
	case r.Portable():
		return "Valid and portable"
	case r.Valid():
		return fmt.Sprintf("Valid with %d warning(s)", len(r.Warnings))
	case r.HasWarnings():
		return fmt.Sprintf("Invalid: %d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
	default:
		return fmt.Sprintf("Invalid: %d error(s)", len(r.Errors))
	}
}

// FileResult is the Result for one file in a batch.
type FileResult struct {
	Path   string `json:"path" yaml:"path"`
	Result `yaml:",inline"`
}

// Process exit codes for a validation run.
const (
	// ExitOK: every document is valid and portable.
	ExitOK = 0
	// ExitErrors: at least one document has errors, or warnings in strict mode.
	ExitErrors = 1
	// ExitWarnings: no errors, but at least one warning.
	ExitWarnings = 2
)

// ExitCode maps a batch of results to a process exit code.
// In strict mode warnings count as errors.
func ExitCode(results []FileResult, strict bool) int {
	code := ExitOK
	for _, fr := range results {
		switch {
		case fr.HasErrors():
			return ExitErrors
		case fr.HasWarnings() && strict:
			return ExitErrors
		case fr.HasWarnings():
			code = ExitWarnings
		}
	}
	return code
}
