package validation

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/klauern/skillfoundry/internal/logging"
)

// ValidateFile reads and validates one document. Files that cannot be read
// produce a Result with a single error instead of a Go error, so a batch can
// report them alongside the rest.
func (v *Validator) ValidateFile(path string) FileResult {
	fr := FileResult{Path: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fr.addError("", "File not found: %s", path)
		return fr
	case err != nil:
		fr.addError("", "Cannot access file: %v", err)
		return fr
	case info.IsDir():
		fr.addError("", "Not a file: %s", path)
		return fr
	}

	// #nosec G304 - path is supplied by the user to be validated
	data, err := os.ReadFile(path)
	if err != nil {
		fr.addError("", "Cannot read file: %v", err)
		return fr
	}

	fr.Result = v.Validate(string(data))
	logging.Debug("validated skill",
		logging.Path(path),
		slog.Int("errors", len(fr.Errors)),
		slog.Int("warnings", len(fr.Warnings)),
	)
	return fr
}

// BatchOptions configures ValidateFiles.
type BatchOptions struct {
	// Jobs is the number of documents validated concurrently. Values below 1
	// mean sequential validation.
	Jobs int
	// OnResult, if set, is called once per finished document. It may be
	// called from several goroutines at once.
	OnResult func(FileResult)
}

// ValidateFiles validates every path and returns the results in input order.
// Documents are independent; nothing is shared between them except the
// read-only registry. It stops early only when ctx is cancelled.
func (v *Validator) ValidateFiles(ctx context.Context, paths []string, opts BatchOptions) ([]FileResult, error) {
	defer logging.Timer("validate-files")()

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = v.ValidateFile(path)
			if opts.OnResult != nil {
				opts.OnResult(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Warn("batch validation interrupted", logging.Err(err))
		return nil, err
	}

	logging.Debug("batch validation finished", logging.Count(len(results)))
	return results, nil
}
