package validation

import "errors"

// ErrInvalidName is wrapped by every NameError.
var ErrInvalidName = errors.New("invalid skill name")

// NameError describes why a candidate skill name was rejected.
type NameError struct {
	Name   string
	Reason string
}

// Error returns the rejection reason.
func (e *NameError) Error() string {
	return e.Reason
}

// Unwrap returns ErrInvalidName for errors.Is.
func (e *NameError) Unwrap() error {
	return ErrInvalidName
}

// CheckName applies the registry's name rule to a candidate name. It returns
// a *NameError carrying the same message the validator would report for a
// document with that name, or nil when the name is acceptable.
func (r *Registry) CheckName(name string) error {
	rule, ok := r.Rule(FieldName)
	if !ok {
		return nil
	}
	if d, found := rule.check(name); found && d.Severity == SeverityError {
		return &NameError{Name: name, Reason: d.Message}
	}
	return nil
}

// ValidateName checks name against the default registry: it must match
// NamePattern and be 1 to 64 characters long.
func ValidateName(name string) error {
	return DefaultRegistry().CheckName(name)
}
