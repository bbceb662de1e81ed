// Package validation checks SKILL.md documents for compliance with the Agent
// Skills format and for portability across hosting tools.
//
// A Registry holds the fixed set of field rules and body thresholds. A
// Validator applies a Registry to a document and returns a Result holding
// errors (the document is non-compliant) and warnings (compliant but
// non-portable or oversized). Diagnostics are ordered: field checks in rule
// order, then body checks.
//
// The same name rule is used by the validator and by the scaffold generator,
// see Registry.CheckName.
package validation
