// Package vacuum removes duplicate catalog edges and compacts the database.
//
// Duplicates cannot be created through the catalog's own writes, but a
// catalog edited by hand or restored from an older build can carry them.
// Vacuum keeps the oldest row of every (path, tag) pair, so tag order on
// each path is unchanged.
package vacuum

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/fusen/internal/progress"
	"github.com/jpl-au/fusen/internal/service"
)

// Options configures a vacuum run.
type Options struct {
	DryRun bool // Report what would be removed without writing
}

// Result reports what was (or would be) removed.
type Result struct {
	Duplicates int64 `json:"duplicates"`
	DryRun     bool  `json:"dry_run,omitempty"`
}

// Run removes duplicate edges and compacts the database. In dry-run mode
// it only counts them.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{DryRun: opts.DryRun}

	if opts.DryRun {
		st, err := svc.Stats(ctx)
		if err != nil {
			return result, err
		}
		result.Duplicates = st.Duplicate
		fmt.Fprintf(w, "Would remove %d duplicate edge(s)\n", st.Duplicate)
		return result, nil
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Vacuum(ctx)
	spin.Stop()
	if err != nil {
		return result, err
	}

	result.Duplicates = n
	if n == 0 {
		fmt.Fprintln(w, "No duplicate edges; database compacted")
	} else {
		fmt.Fprintf(w, "Removed %d duplicate edge(s); database compacted\n", n)
	}
	return result, nil
}
