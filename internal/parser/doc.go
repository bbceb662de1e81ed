// Package parser reads SKILL.md documents.
//
// Extract splits the leading "---" delimited header from the body and parses
// the header into a flat, ordered key/value mapping. The header grammar is
// deliberately small: one "key: value" per line, optional matching quotes
// around a value, and indented continuation lines for multi-line values.
// Nested structures, lists and anchors are not interpreted.
//
// DiscoverFiles locates SKILL.md files beneath a directory so callers can
// validate a whole skills tree in one pass.
package parser
