// add.go implements explicit additions: the user names files and
// directories instead of relying on the configured scan roots.

package scan

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/service"
)

// Add tracks the named files and every new file below the named
// directories. Directories are walked per opts.Mode. Paths the catalog
// already tracks are left alone. A missing argument is an error; nothing
// is written in that case.
func Add(ctx context.Context, w io.Writer, svc service.Service, args []string, opts Options) (Result, error) {
	result := Result{Added: []string{}, Removed: []string{}}
	if len(args) == 0 {
		return result, fmt.Errorf("no paths given")
	}

	var files, dirs []string
	for _, a := range args {
		p, err := svc.NormalisePath(a)
		if err != nil {
			return result, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return result, fmt.Errorf("add %s: %w", a, err)
		}
		if info.IsDir() {
			dirs = append(dirs, p)
		} else {
			files = append(files, p)
		}
	}

	known := svc.Paths(ctx)
	for _, f := range files {
		if known.Contains(f) {
			opts.logger().Debug("already tracked", zap.String("path", f))
			continue
		}
		known.Add(f)
		result.Added = append(result.Added, f)
	}

	if len(result.Added) > 0 {
		if opts.DryRun {
			for _, p := range result.Added {
				fmt.Fprintf(w, "Would add: %s\n", p)
			}
		} else {
			if err := svc.AddPaths(ctx, result.Added); err != nil {
				return Result{Added: []string{}, Removed: []string{}}, err
			}
			for _, p := range result.Added {
				fmt.Fprintf(w, "Added: %s\n", p)
			}
		}
	}

	if len(dirs) == 0 {
		return result, nil
	}
	found, err := Reconcile(ctx, w, svc, dirs, opts)
	result.Added = append(result.Added, found.Added...)
	result.Skipped = found.Skipped
	result.Rejected = found.Rejected
	return result, err
}
