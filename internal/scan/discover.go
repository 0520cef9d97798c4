// discover.go walks a single scan root.
//
// Separated from scan.go so the traversal rules live in one place:
//   - only regular files are reported; a symlink counts when its target is
//     a regular file, and is reported under the link's own path
//   - symlinked directories are never descended into, which also rules out
//     cycles
//   - per-entry errors are logged and skipped, never returned
//
// Ignore patterns use gitignore syntax relative to the root, so "*.part" or
// "Samples/" behave the way users expect from a .gitignore file.

package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/path"
	"github.com/jpl-au/fusen/internal/service"
)

// Discover returns the regular files under root that are not in existing,
// as absolute cleaned paths in lexical order. It fails only when root itself
// cannot be read or ctx is cancelled.
func Discover(ctx context.Context, root string, existing service.Set, opts Options) ([]string, error) {
	root, err := path.Normalise(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %q: %w", root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	w := walker{
		ctx:      ctx,
		root:     root,
		existing: existing,
		opts:     opts,
		log:      opts.logger(),
	}
	if len(opts.Ignore) > 0 {
		w.ignore = ignore.CompileIgnoreLines(opts.Ignore...)
	}

	if opts.Mode == Recursive {
		err = filepath.WalkDir(root, w.visit)
	} else {
		err = w.readDir()
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(w.found)
	return w.found, nil
}

type walker struct {
	ctx      context.Context
	root     string
	existing service.Set
	opts     Options
	ignore   *ignore.GitIgnore
	log      *zap.Logger
	found    []string
}

func (w *walker) readDir() error {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("scan root: %w", err)
	}
	for _, d := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			continue
		}
		w.consider(filepath.Join(w.root, d.Name()), d)
	}
	return nil
}

func (w *walker) visit(p string, d fs.DirEntry, err error) error {
	if cerr := w.ctx.Err(); cerr != nil {
		return cerr
	}
	if err != nil {
		if p == w.root {
			return fmt.Errorf("scan root: %w", err)
		}
		w.log.Debug("skipping unreadable entry", zap.String("path", p), zap.Error(err))
		return nil
	}
	if d.IsDir() {
		if p != w.root && w.skipped(p, d, true) {
			return filepath.SkipDir
		}
		return nil
	}
	w.consider(p, d)
	return nil
}

// consider records p when it resolves to a regular file not yet tracked.
func (w *walker) consider(p string, d fs.DirEntry) {
	if w.skipped(p, d, false) || w.existing.Contains(p) {
		return
	}

	switch {
	case d.Type().IsRegular():
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(p)
		if err != nil {
			w.log.Debug("skipping broken symlink", zap.String("path", p), zap.Error(err))
			return
		}
		if !info.Mode().IsRegular() {
			return
		}
	default:
		return
	}
	w.found = append(w.found, p)
}

func (w *walker) skipped(p string, d fs.DirEntry, dir bool) bool {
	if w.opts.SkipHidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	if w.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if dir {
		return w.ignore.MatchesPath(rel) || w.ignore.MatchesPath(rel+"/")
	}
	return w.ignore.MatchesPath(rel)
}
