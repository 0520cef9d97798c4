// Package scan reconciles the catalog with the filesystem.
//
// Two passes keep the catalog in step with disk:
//   - Reconcile walks the configured scan roots and tracks every regular file
//     the catalog does not know yet, in one batch.
//   - Prune drops every tracked path that no longer exists on disk.
//
// Startup runs prune before reconcile, so a file moved between roots is
// dropped under its old name and picked up under its new one.
//
// Walks never stop on a bad entry: permission errors, broken symlinks and
// vanished files are logged at debug level and skipped.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/progress"
	"github.com/jpl-au/fusen/internal/service"
)

// Mode selects how deep a root is walked.
type Mode int

const (
	// SingleLevel visits only the immediate entries of a root.
	SingleLevel Mode = iota
	// Recursive visits the whole tree below a root. Symlinked directories
	// are not descended into.
	Recursive
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	if m == Recursive {
		return "recursive"
	}
	return "single"
}

// ModeOf maps a recursive flag to a Mode.
func ModeOf(recursive bool) Mode {
	if recursive {
		return Recursive
	}
	return SingleLevel
}

// Options configures a reconciliation.
type Options struct {
	Mode       Mode
	Ignore     []string    // gitignore-style patterns, matched relative to each root
	SkipHidden bool        // skip dot files and dot directories
	DryRun     bool        // report what would change without writing
	Logger     *zap.Logger // nil discards
}

// FromConfig returns the options the settings file asks for: traversal
// mode from scanRecursive and ignore patterns from scanIgnore.
func FromConfig(cfg *config.Config, log *zap.Logger) Options {
	return Options{
		Mode:   ModeOf(cfg.Recursive()),
		Ignore: cfg.ScanIgnore,
		Logger: log,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Result contains the outcome of a reconcile or prune.
type Result struct {
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Skipped  []string `json:"skipped_roots,omitempty"` // roots that could not be read
	Rejected []string `json:"rejected,omitempty"`      // paths the catalog will not store
}

// Empty returns true if nothing changed.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// Total returns the total number of changes.
func (r Result) Total() int {
	return len(r.Added) + len(r.Removed)
}

// admit splits paths into those the catalog accepts and those it rejects,
// e.g. a name longer than maxPathLength. One bad path must not sink the
// batch it was found in.
func admit(svc service.Service, paths []string, log *zap.Logger) (ok, rejected []string) {
	ok = make([]string, 0, len(paths))
	for _, p := range paths {
		n, err := svc.NormalisePath(p)
		if err != nil {
			log.Warn("skipping path", zap.String("path", p), zap.Error(err))
			rejected = append(rejected, p)
			continue
		}
		ok = append(ok, n)
	}
	return ok, rejected
}

// Reconcile discovers files under every root that the catalog does not
// track yet and adds them with a single AddPaths call. An unreadable root is
// recorded in Result.Skipped and the remaining roots are still scanned. A
// file the catalog would refuse is recorded in Result.Rejected and left out
// of the batch.
func Reconcile(ctx context.Context, w io.Writer, svc service.Service, roots []string, opts Options) (Result, error) {
	result := Result{Added: []string{}, Removed: []string{}}
	log := opts.logger()

	known := svc.Paths(ctx)
	spin := progress.NewSpinner("Scanning")
	spin.Start()
	for _, root := range roots {
		spin.SetLabel("Scanning " + root)
		found, err := Discover(ctx, root, known, opts)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			spin.Stop()
			return result, err
		}
		if err != nil {
			log.Warn("skipping scan root", zap.String("root", root), zap.Error(err))
			result.Skipped = append(result.Skipped, root)
			continue
		}
		for _, p := range found {
			// A file reachable from two roots is added once.
			known.Add(p)
		}
		result.Added = append(result.Added, found...)
	}
	spin.Stop()
	result.Added, result.Rejected = admit(svc, result.Added, log)

	if len(result.Added) == 0 {
		return result, nil
	}
	if opts.DryRun {
		for _, p := range result.Added {
			fmt.Fprintf(w, "Would add: %s\n", p)
		}
		return result, nil
	}

	if err := svc.AddPaths(ctx, result.Added); err != nil {
		return Result{Added: []string{}, Removed: []string{}, Skipped: result.Skipped, Rejected: result.Rejected}, err
	}
	for _, p := range result.Added {
		fmt.Fprintf(w, "Added: %s\n", p)
	}
	log.Info("reconciled", zap.Int("roots", len(roots)), zap.Int("added", len(result.Added)))
	return result, nil
}

// Prune removes every tracked path that no longer exists on disk. A symlink
// whose target is gone counts as missing. Paths that cannot be inspected
// (permission denied) are kept, as are stored paths the catalog now refuses
// to address; those are recorded in Result.Rejected.
func Prune(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{Added: []string{}, Removed: []string{}}
	log := opts.logger()

	paths := svc.Paths(ctx).Sorted()
	prog := progress.New("Checking", len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			prog.Done()
			return result, err
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				result.Removed = append(result.Removed, p)
			} else {
				log.Debug("cannot inspect tracked path", zap.String("path", p), zap.Error(err))
			}
		}
		prog.Step()
	}
	prog.Done()
	result.Removed, result.Rejected = admit(svc, result.Removed, log)

	if len(result.Removed) == 0 {
		return result, nil
	}
	if opts.DryRun {
		for _, p := range result.Removed {
			fmt.Fprintf(w, "Would remove: %s\n", p)
		}
		return result, nil
	}

	if _, err := svc.RemovePaths(ctx, result.Removed); err != nil {
		return Result{Added: []string{}, Removed: []string{}, Rejected: result.Rejected}, err
	}
	for _, p := range result.Removed {
		fmt.Fprintf(w, "Removed: %s\n", p)
	}
	log.Info("pruned", zap.Int("removed", len(result.Removed)))
	return result, nil
}

// Startup prunes vanished paths and then reconciles roots.
func Startup(ctx context.Context, w io.Writer, svc service.Service, roots []string, opts Options) (Result, error) {
	pruned, err := Prune(ctx, w, svc, opts)
	if err != nil {
		return pruned, err
	}
	added, err := Reconcile(ctx, w, svc, roots, opts)
	added.Removed = pruned.Removed
	added.Rejected = append(pruned.Rejected, added.Rejected...)
	return added, err
}
