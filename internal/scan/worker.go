// worker.go runs a reconciliation off the caller's goroutine.
//
// A walk over a large media tree can take minutes. The worker owns its own
// cancellable context and delivers exactly one Outcome when the walk ends,
// whether it finished, failed or was cancelled. Nothing is shared with the
// caller while the walk runs; the discovered batch is written to the catalog
// in one transaction at the end, so cancelling never leaves half a batch.

package scan

import (
	"context"
	"io"

	"github.com/jpl-au/fusen/internal/service"
)

// Outcome is what a Worker delivers.
type Outcome struct {
	Result Result
	Err    error
}

// Worker is a running reconciliation.
type Worker struct {
	cancel context.CancelFunc
	done   chan Outcome
}

// Job selects what a worker runs.
type Job int

const (
	// JobReconcile only adds new files.
	JobReconcile Job = iota
	// JobStartup prunes and then adds.
	JobStartup
)

// Start launches job over roots and returns immediately.
func Start(ctx context.Context, w io.Writer, svc service.Service, roots []string, job Job, opts Options) *Worker {
	ctx, cancel := context.WithCancel(ctx)
	wk := &Worker{cancel: cancel, done: make(chan Outcome, 1)}

	go func() {
		defer cancel()
		var (
			res Result
			err error
		)
		switch job {
		case JobStartup:
			res, err = Startup(ctx, w, svc, roots, opts)
		default:
			res, err = Reconcile(ctx, w, svc, roots, opts)
		}
		wk.done <- Outcome{Result: res, Err: err}
		close(wk.done)
	}()
	return wk
}

// Cancel asks the walk to stop. The Outcome still arrives, carrying
// context.Canceled unless the walk had already finished.
func (w *Worker) Cancel() {
	w.cancel()
}

// Done delivers the single Outcome and is then closed.
func (w *Worker) Done() <-chan Outcome {
	return w.done
}

// Wait blocks until the Outcome is available.
func (w *Worker) Wait() Outcome {
	return <-w.done
}
