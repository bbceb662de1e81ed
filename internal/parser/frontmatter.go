package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Delimiter is the line that opens and closes a SKILL.md header.
const Delimiter = "---"

// ErrMalformedHeader is returned when a document lacks the opening or closing
// header delimiter.
var ErrMalformedHeader = errors.New("malformed header")

var (
	errMissingOpening = fmt.Errorf("%w: file must start with '%s' (YAML frontmatter delimiter)", ErrMalformedHeader, Delimiter)
	errMissingClosing = fmt.Errorf("%w: missing closing '%s' for frontmatter", ErrMalformedHeader, Delimiter)
)

// keyLine matches a trimmed "key: value" header line.
var keyLine = regexp.MustCompile(`^(\w[\w-]*)\s*:\s*(.*)$`)

// Frontmatter is an ordered mapping of header keys to values.
// Keys keep the order of their first occurrence; a repeated key overwrites
// the earlier value.
type Frontmatter struct {
	keys   []string
	values map[string]string
}

// NewFrontmatter returns an empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: make(map[string]string)}
}

// Set stores value under key.
func (f *Frontmatter) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether the key was present.
func (f *Frontmatter) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key was present in the header.
func (f *Frontmatter) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns the header keys in first-occurrence order.
func (f *Frontmatter) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Len returns the number of distinct keys.
func (f *Frontmatter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Extract splits content into its parsed header and the body that follows the
// closing delimiter line. The body is returned verbatim.
//
// An error wrapping ErrMalformedHeader is returned when the first line is not
// the delimiter or when no closing delimiter line follows it.
func Extract(content string) (*Frontmatter, string, error) {
	line, rest, more := cutLine(content)
	if line != Delimiter {
		return nil, "", errMissingOpening
	}

	p := newHeaderParser()
	for more {
		line, rest, more = cutLine(rest)
		if line == Delimiter {
			return p.finish(), rest, nil
		}
		p.feed(line)
	}

	return nil, "", errMissingClosing
}

// cutLine returns the first line of s without its line ending, the text after
// it, and whether a line was consumed at all.
func cutLine(s string) (line, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	line, rest, _ = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, true
}

// parseState is the state of the header line parser.
type parseState int

const (
	// awaitingKey: no field has been opened yet.
	awaitingKey parseState = iota
	// accumulatingValue: a field is open and may receive continuation lines.
	accumulatingValue
)

// headerParser turns header lines into a Frontmatter.
type headerParser struct {
	state parseState
	key   string
	lines []string
	out   *Frontmatter
}

func newHeaderParser() *headerParser {
	return &headerParser{state: awaitingKey, out: NewFrontmatter()}
}

// feed consumes one header line.
func (p *headerParser) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	if m := keyLine.FindStringSubmatch(trimmed); m != nil {
		p.commit()
		p.key = m[1]
		p.lines = nil
		if v := Value(m[2]); v != "" {
			p.lines = append(p.lines, v)
		}
		p.state = accumulatingValue
		return
	}

	switch p.state {
	case accumulatingValue:
		if strings.HasPrefix(line, "  ") {
			p.lines = append(p.lines, trimmed)
		}
	case awaitingKey:
		// Stray text before the first key carries no meaning.
	}
}

// commit stores the open field, if any.
func (p *headerParser) commit() {
	if p.state != accumulatingValue {
		return
	}
	p.out.Set(p.key, strings.TrimSpace(strings.Join(p.lines, "\n")))
	p.state = awaitingKey
	p.key = ""
	p.lines = nil
}

func (p *headerParser) finish() *Frontmatter {
	p.commit()
	return p.out
}

// Value returns an inline header value the way Extract stores it: trimmed,
// with one pair of matching quotes removed.
func Value(raw string) string {
	return unquote(strings.TrimSpace(raw))
}

// unquote strips one pair of matching single or double quotes. Escapes are
// not interpreted.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first == last && (first == '"' || first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
