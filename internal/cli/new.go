package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillfoundry/internal/logging"
	"github.com/klauern/skillfoundry/internal/template"
	"github.com/klauern/skillfoundry/internal/ui"
	"github.com/klauern/skillfoundry/internal/util"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Scaffold a new skill directory",
		UsageText: "skillfoundry new <name> <description> [options]",
		Description: `Create a skill directory containing a SKILL.md that passes validation.

   The name must be lowercase letters, digits and hyphens (max 64 chars).

   Examples:
     skillfoundry new pdf-tools "Extract text from PDFs. Use when working with PDF files."
     skillfoundry new pdf-tools "..." --full --author jane
     skillfoundry new pdf-tools "..." --dry-run`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Base directory for the skill (default from config, .claude/skills)",
			},
			&cli.BoolFlag{
				Name:  "with-scripts",
				Usage: "Create scripts/ with a placeholder helper",
			},
			&cli.BoolFlag{
				Name:  "with-refs",
				Usage: "Create references/ with a placeholder page",
			},
			&cli.BoolFlag{
				Name:  "full",
				Usage: "Create all optional directories",
			},
			&cli.StringFlag{
				Name:  "author",
				Usage: "Author recorded in metadata (default from config)",
			},
			&cli.StringFlag{
				Name:  "template-file",
				Usage: "Path to a custom SKILL.md template",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the generated SKILL.md without creating files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// An empty quoted description is dropped by the argument parser,
			// so a lone name reaches the generator and fails there.
			args := cmd.Args()
			if args.Len() < 1 || args.Len() > 2 {
				return errors.New("new requires 2 arguments: <name> <description>")
			}
			return runNew(ctx, cmd, args.Get(0), args.Get(1))
		},
	}
}

func runNew(ctx context.Context, cmd *cli.Command, name, description string) error {
	cfg := configFrom(ctx)
	out := cmd.Root().Writer

	log := logging.WithContext(ctx).With(logging.Skill(name))
	log.Debug("creating new skill")

	opts := template.Options{
		Name:        name,
		Description: description,
		OutputDir:   cfg.Scaffold.OutputDir,
		Author:      cfg.Scaffold.Author,
		Created:     time.Now(),
		WithScripts: cfg.Scaffold.WithScripts || cmd.Bool("with-scripts") || cmd.Bool("full"),
		WithRefs:    cfg.Scaffold.WithRefs || cmd.Bool("with-refs") || cmd.Bool("full"),
	}
	if cmd.IsSet("output-dir") {
		opts.OutputDir = cmd.String("output-dir")
	}
	if cmd.IsSet("author") {
		opts.Author = cmd.String("author")
	}
	opts.OutputDir = util.ExpandPath(opts.OutputDir, "")

	gen, err := template.New(cfg.Registry())
	if err != nil {
		return fmt.Errorf("failed to initialize template generator: %w", err)
	}
	if path := cmd.String("template-file"); path != "" {
		if err := gen.LoadCustomTemplate(path); err != nil {
			return fmt.Errorf("failed to load custom template: %w", err)
		}
	}

	if cmd.Bool("dry-run") {
		content, err := gen.Render(opts)
		if err != nil {
			return fmt.Errorf("cannot create skill: %w", err)
		}
		fmt.Fprintf(out, "%s %s\n\n", ui.Bold("Would create:"), ui.Info(filepath.Join(opts.OutputDir, name, "SKILL.md")))
		_, err = io.WriteString(out, content)
		return err
	}

	res, err := gen.Scaffold(opts)
	if err != nil {
		log.Debug("scaffold failed", logging.Err(err))
		return fmt.Errorf("cannot create skill: %w", err)
	}

	printScaffold(out, res)
	return nil
}

// printScaffold reports the created files and what to do next.
func printScaffold(w io.Writer, res *template.Result) {
	fmt.Fprintln(w, ui.StatusSuccess("Created skill: "+res.Dir))
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Files created:"))
	for _, f := range res.Files {
		rel, err := filepath.Rel(res.Dir, f)
		if err != nil {
			rel = f
		}
		fmt.Fprintf(w, "   %s\n", ui.Dim(rel))
	}
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Next steps:"))
	fmt.Fprintf(w, "  1. Edit %s with your instructions\n", ui.Info(res.SkillFile))
	fmt.Fprintf(w, "  2. Validate: %s\n", ui.Info("skillfoundry validate "+res.SkillFile))
}
