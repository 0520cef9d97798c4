// Package watch keeps the catalog in step with the scan roots while running.
//
// fsnotify reports create, remove and rename events under each root. Events
// are debounced: a burst (a torrent finishing, an rsync of a season) causes
// one reconciliation after the burst settles rather than one per file. Each
// reconciliation is a prune followed by a scan, run on a scan.Worker and
// delivered to the OnBatch callback.
//
// fsnotify watches single directories, so in recursive mode every directory
// below a root is watched, and directories created later are added as their
// create events arrive.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jpl-au/fusen/internal/path"
	"github.com/jpl-au/fusen/internal/scan"
	"github.com/jpl-au/fusen/internal/service"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Scan     scan.Options
	Debounce time.Duration      // zero uses DefaultDebounce
	Initial  bool               // run one reconciliation before waiting for events
	Out      io.Writer          // per-path output of each batch, nil discards
	OnBatch  func(scan.Outcome) // called after every reconciliation
}

// Watcher reconciles roots whenever their contents change.
type Watcher struct {
	svc     service.Service
	roots   []string
	opts    Options
	log     *zap.Logger
	fsw     *fsnotify.Watcher
	trigger chan struct{}
	ready   chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over roots. Roots are normalised the same way the
// scanner normalises them, so "~/media" is watched where it is scanned.
// Call Run to start it.
func New(svc service.Service, roots []string, opts Options) (*Watcher, error) {
	if len(roots) == 0 {
		return nil, errors.New("no scan directories to watch")
	}
	abs := make([]string, 0, len(roots))
	for _, r := range roots {
		p, err := path.Normalise(r)
		if err != nil {
			return nil, fmt.Errorf("watch root %q: %w", r, err)
		}
		abs = append(abs, p)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	log := opts.Scan.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		svc:     svc,
		roots:   abs,
		opts:    opts,
		log:     log.Named("watch"),
		fsw:     fsw,
		trigger: make(chan struct{}, 1),
		ready:   make(chan struct{}),
	}, nil
}

// Ready is closed once every root is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error only when no root could be watched.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	watched := 0
	for _, root := range w.roots {
		if err := w.add(root); err != nil {
			w.log.Warn("cannot watch root", zap.String("root", root), zap.Error(err))
			continue
		}
		watched++
	}
	if watched == 0 {
		return errors.New("none of the scan directories could be watched")
	}
	close(w.ready)

	if w.opts.Initial {
		w.schedule(0)
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-w.trigger:
			out, cancelled := w.reconcile(ctx)
			if cancelled {
				return nil
			}
			if w.opts.OnBatch != nil {
				w.opts.OnBatch(out)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))

	if ev.Has(fsnotify.Create) && w.opts.Scan.Mode == scan.Recursive {
		// A new directory may already hold files by the time it is
		// watched; the debounced scan picks those up.
		if err := w.add(ev.Name); err != nil && !errors.Is(err, errNotDir) {
			w.log.Debug("cannot watch new directory", zap.String("path", ev.Name), zap.Error(err))
		}
	}
	w.schedule(w.opts.Debounce)
}

func (w *Watcher) reconcile(ctx context.Context) (scan.Outcome, bool) {
	wk := scan.Start(ctx, w.opts.Out, w.svc, w.roots, scan.JobStartup, w.opts.Scan)
	select {
	case <-ctx.Done():
		wk.Cancel()
		<-wk.Done()
		return scan.Outcome{}, true
	case out := <-wk.Done():
		if out.Err != nil {
			w.log.Error("reconciliation failed", zap.Error(out.Err))
		} else if !out.Result.Empty() {
			w.log.Info("reconciled",
				zap.Int("added", len(out.Result.Added)),
				zap.Int("removed", len(out.Result.Removed)))
			if err := w.svc.Checkpoint(ctx); err != nil {
				w.log.Debug("checkpoint", zap.Error(err))
			}
		}
		return out, false
	}
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(d, func() {
		select {
		case w.trigger <- struct{}{}:
		default: // a reconciliation is already pending
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

var errNotDir = errors.New("not a directory")

// add watches dir, and every directory below it in recursive mode.
func (w *Watcher) add(dir string) error {
	if w.opts.Scan.Mode != scan.Recursive {
		return w.fsw.Add(dir)
	}
	info, err := lstatDir(dir)
	if err != nil {
		return err
	}
	if !info {
		return errNotDir
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			w.log.Debug("cannot watch directory", zap.String("path", p), zap.Error(err))
		}
		return nil
	})
}
