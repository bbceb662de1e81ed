// Package template scaffolds new skill directories from built-in templates.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klauern/skillfoundry/internal/logging"
	"github.com/klauern/skillfoundry/internal/parser"
	"github.com/klauern/skillfoundry/internal/validation"
)

// TemplateType identifies one of the files a scaffold can contain.
type TemplateType string

const (
	// Skill is the SKILL.md document.
	Skill TemplateType = "skill"
	// Script is the placeholder helper script under scripts/.
	Script TemplateType = "script"
	// Reference is the placeholder reference page under references/.
	Reference TemplateType = "reference"
)

// Optional scaffold directories and their placeholder files.
const (
	ScriptsDir     = "scripts"
	ScriptFile     = "helper.py"
	ReferencesDir  = "references"
	ReferenceFile  = "DETAILS.md"
	DefaultAuthor  = "your-name"
	createdLayout  = "2006-01-02"
	dirPermissions = 0o750
)

var (
	// ErrSkillExists is returned when the target skill directory already exists.
	ErrSkillExists = errors.New("skill directory already exists")
	// ErrInvalidDescription is returned for a blank, multi-line or oversized
	// description.
	ErrInvalidDescription = errors.New("invalid description")
)

// TemplateData holds the values substituted into templates.
type TemplateData struct {
	Name        string
	Description string
	Title       string
	Author      string
	Created     string
}

// Options describes a skill to scaffold.
type Options struct {
	Name        string
	Description string
	// OutputDir is the directory the skill directory is created in.
	OutputDir string
	// Author is recorded in the metadata block. Defaults to DefaultAuthor.
	Author string
	// Created is the creation date. Defaults to the current time.
	Created     time.Time
	WithScripts bool
	WithRefs    bool
}

// Result lists what Scaffold created.
type Result struct {
	// Dir is the new skill directory.
	Dir string
	// SkillFile is the path of the generated SKILL.md.
	SkillFile string
	// Files are all created files, sorted.
	Files []string
}

// Generator renders skill scaffolds. Names are checked with the same
// registry the validator uses.
type Generator struct {
	registry  *validation.Registry
	templates map[TemplateType]*template.Template
}

// New creates a generator with the built-in templates. A nil registry
// selects validation.DefaultRegistry.
func New(registry *validation.Registry) (*Generator, error) {
	if registry == nil {
		registry = validation.DefaultRegistry()
	}
	g := &Generator{
		registry:  registry,
		templates: make(map[TemplateType]*template.Template),
	}

	builtin := map[TemplateType]string{
		Skill:     skillTemplate,
		Script:    scriptTemplate,
		Reference: referenceTemplate,
	}
	for typ, content := range builtin {
		tmpl, err := template.New(string(typ)).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", typ, err)
		}
		g.templates[typ] = tmpl
	}

	return g, nil
}

// LoadCustomTemplate replaces the SKILL.md template with the one in path.
// The custom template receives the same TemplateData.
func (g *Generator) LoadCustomTemplate(path string) error {
	// #nosec G304 - template path is provided by the user
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}

	tmpl, err := template.New(string(Skill)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	g.templates[Skill] = tmpl
	logging.Debug("loaded custom skill template", logging.Path(path))
	return nil
}

// Data derives the template values for opts.
func (g *Generator) Data(opts Options) TemplateData {
	author := opts.Author
	if author == "" {
		author = DefaultAuthor
	}
	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	return TemplateData{
		Name:        opts.Name,
		Description: opts.Description,
		Title:       Title(opts.Name),
		Author:      author,
		Created:     created.Format(createdLayout),
	}
}

// Generate renders one template.
func (g *Generator) Generate(typ TemplateType, data TemplateData) (string, error) {
	tmpl, ok := g.templates[typ]
	if !ok {
		return "", fmt.Errorf("template %s not found", typ)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Render checks opts and returns the SKILL.md content without touching disk.
func (g *Generator) Render(opts Options) (string, error) {
	if err := g.check(opts); err != nil {
		return "", err
	}
	return g.Generate(Skill, g.Data(opts))
}

// Scaffold creates OutputDir/<name>/SKILL.md and the requested optional
// directories. Nothing is written when the name or description is rejected
// or the skill directory already exists.
func (g *Generator) Scaffold(opts Options) (*Result, error) {
	defer logging.Timer("scaffold")()

	if err := g.check(opts); err != nil {
		return nil, err
	}

	data := g.Data(opts)
	files := map[string]string{}

	content, err := g.Generate(Skill, data)
	if err != nil {
		return nil, err
	}
	files[parser.SkillFileName] = content

	if opts.WithScripts {
		if files[filepath.Join(ScriptsDir, ScriptFile)], err = g.Generate(Script, data); err != nil {
			return nil, err
		}
	}
	if opts.WithRefs {
		if files[filepath.Join(ReferencesDir, ReferenceFile)], err = g.Generate(Reference, data); err != nil {
			return nil, err
		}
	}

	skillDir := filepath.Join(opts.OutputDir, opts.Name)
	if err := os.MkdirAll(opts.OutputDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.Mkdir(skillDir, dirPermissions); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrSkillExists, skillDir)
		}
		return nil, fmt.Errorf("failed to create skill directory: %w", err)
	}

	res := &Result{Dir: skillDir, SkillFile: filepath.Join(skillDir, parser.SkillFileName)}
	for rel, body := range files {
		path := filepath.Join(skillDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		perm := os.FileMode(0o644)
		if strings.HasPrefix(rel, ScriptsDir+string(filepath.Separator)) {
			perm = 0o755
		}
		// #nosec G306 - scaffolded files are meant to be shared and edited
		if err := os.WriteFile(path, []byte(body), perm); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", rel, err)
		}
		res.Files = append(res.Files, path)
	}
	slices.Sort(res.Files)

	logging.Info("scaffolded skill",
		logging.Skill(opts.Name),
		logging.Path(skillDir),
		logging.Count(len(res.Files)),
	)
	return res, nil
}

// check rejects names and descriptions the validator would report as errors.
func (g *Generator) check(opts Options) error {
	if err := g.registry.CheckName(opts.Name); err != nil {
		return err
	}

	// The header is line oriented, so the description has to fit on the
	// key line and is read back trimmed and unquoted.
	if strings.ContainsAny(opts.Description, "\r\n") {
		return fmt.Errorf("%w: description must be a single line", ErrInvalidDescription)
	}
	desc := parser.Value(opts.Description)
	if desc == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}
	if rule, ok := g.registry.Rule(validation.FieldDescription); ok && rule.MaxLength > 0 {
		if n := utf8.RuneCountInString(desc); n > rule.MaxLength {
			return fmt.Errorf("%w: too long (%d chars): maximum %d", ErrInvalidDescription, n, rule.MaxLength)
		}
	}
	return nil
}

// Title turns a skill name into a heading: hyphens become spaces and every
// run of letters is title-cased, so "api2client" becomes "Api2Client".
func Title(name string) string {
	caser := cases.Title(language.English)
	s := strings.ReplaceAll(name, "-", " ")

	var b strings.Builder
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}
