package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseName is the file name, without extension, used by ExportAll.
const DefaultBaseName = "tree"

// Result reports one file written by ExportAll.
type Result struct {
	Format Format
	Path   string
	Err    error
}

// ExportAll writes opts.Tree to dir once per format, concurrently. The
// layout and stats are computed once and shared. Per-format failures are
// recorded in the results and joined into the returned error.
// opts.Path, when set, is the base file name instead of DefaultBaseName.
func ExportAll(ctx context.Context, opts SnapshotOptions, dir string, formats []Format) ([]Result, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no formats requested")
	}
	// Aliases and repeats collapse to one write per file.
	normalized := make([]Format, 0, len(formats))
	seen := make(map[Format]bool, len(formats))
	for _, f := range formats {
		nf, err := ParseFormat(string(f))
		if err != nil {
			return nil, err
		}
		if seen[nf] {
			continue
		}
		seen[nf] = true
		normalized = append(normalized, nf)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := DefaultBaseName
	if opts.Path != "" {
		base = opts.Path
	}
	doc := NewDocument(opts)
	results := make([]Result, len(normalized))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(normalized))
	for i, f := range normalized {
		path := filepath.Join(dir, base+f.Ext())
		g.Go(func() error {
			results[i] = Result{Format: f, Path: path}
			select {
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return nil
			default:
			}
			results[i].Err = writeFormat(path, f, doc)
			return nil // per-format errors are reported in results
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Format, r.Err))
		}
	}
	return results, errors.Join(errs...)
}
