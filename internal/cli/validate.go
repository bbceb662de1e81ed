package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillfoundry/internal/export"
	"github.com/klauern/skillfoundry/internal/logging"
	"github.com/klauern/skillfoundry/internal/parser"
	"github.com/klauern/skillfoundry/internal/progress"
	"github.com/klauern/skillfoundry/internal/validation"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate SKILL.md files for compliance and portability",
		UsageText: "skillfoundry validate [options] <path>...",
		Description: `Check SKILL.md files against the Agent Skills format.

   Directories are searched recursively for SKILL.md files.

   Exit codes:
     0  all files valid and portable
     1  errors found (or warnings with --strict)
     2  warnings only

   Examples:
     skillfoundry validate .claude/skills/my-skill/SKILL.md
     skillfoundry validate --strict .claude/skills
     skillfoundry validate --format json skills/`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat warnings as errors",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only output files with errors or warnings",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, json, yaml, markdown)",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Number of files validated concurrently",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("validate requires at least one <path>")
			}
			return runValidate(ctx, cmd, cmd.Args().Slice())
		},
	}
}

func runValidate(ctx context.Context, cmd *cli.Command, args []string) error {
	cfg := configFrom(ctx)

	strict := cfg.Validation.Strict || cmd.Bool("strict")
	quiet := cfg.Output.Quiet || cmd.Bool("quiet")
	jobs := cfg.Validation.Jobs
	if cmd.IsSet("jobs") {
		jobs = cmd.Int("jobs")
	}
	formatStr := cfg.Output.Format
	if cmd.IsSet("format") {
		formatStr = cmd.String("format")
	}
	format, err := export.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	paths, err := resolvePaths(args)
	if err != nil {
		return err
	}

	bar := progress.New(progress.Options{
		Max:         len(paths),
		Description: "Validating",
		Writer:      cmd.Root().ErrWriter,
	})

	validator := validation.New(cfg.Registry())
	results, err := validator.ValidateFiles(ctx, paths, validation.BatchOptions{
		Jobs: jobs,
		OnResult: func(validation.FileResult) {
			_ = bar.Add(1)
		},
	})
	if err != nil {
		_ = bar.Clear()
		return fmt.Errorf("validation interrupted: %w", err)
	}
	_ = bar.Finish()

	opts := export.DefaultOptions()
	opts.Format = format
	opts.Strict = strict
	opts.Quiet = quiet
	exporter := export.New(opts)
	if err := exporter.Export(results, cmd.Root().Writer); err != nil {
		return err
	}

	code := validation.ExitCode(results, strict)
	logging.WithContext(ctx).Info("validation finished",
		logging.Count(len(results)),
		logging.Operation("validate"),
		slog.Int("exit_code", code),
	)
	if code != validation.ExitOK {
		return cli.Exit("", code)
	}
	return nil
}

// resolvePaths expands directory arguments into the SKILL.md files below
// them. Other arguments pass through unchanged so that missing files are
// reported in the results. A directory without skills is kept as is and
// reported as not a file.
func resolvePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := parser.DiscoverFiles(arg, parser.SkillPatterns)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", arg, err)
		}
		logging.Debug("discovered skills", logging.Path(arg), logging.Count(len(found)))
		if len(found) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
