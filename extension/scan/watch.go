// watch.go implements "fusen watch", which reconciles the scan directories
// whenever their contents change until interrupted.

package scan

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/duration"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/scan"
	"github.com/jpl-au/fusen/internal/watch"
)

func (e *Extension) newWatchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "watch [dir]...",
		Short: "Keep the catalog in step with the scan directories",
		Long: `Watch the scan directories (or the ones given) and reconcile whenever
files are created, removed or renamed. Bursts of changes are batched.
Stop with Ctrl-C.

  fusen watch --initial
  fusen watch --debounce 2s /mnt/nas/incoming`,
		RunE: e.runWatch,
	}
	c.Flags().Bool(extension.FlagInitial, false, "Reconcile once before waiting for changes")
	c.Flags().BoolP(extension.FlagRecursive, "r", true, "Watch subdirectories (default from scanRecursive)")
	c.Flags().Bool(extension.FlagSkipHidden, false, "Skip dot files and dot directories")
	c.Flags().String(extension.FlagDebounce, watch.DefaultDebounce.String(), "Wait this long after the last change (e.g. 500ms, 2s)")
	return c
}

func (e *Extension) runWatch(c *cobra.Command, args []string) error {
	initial, _ := c.Flags().GetBool(extension.FlagInitial)
	raw, _ := c.Flags().GetString(extension.FlagDebounce)
	debounce, err := duration.Parse(raw)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("--%s: %w", extension.FlagDebounce, err))
	}

	roots := args
	if len(roots) == 0 {
		roots = e.ctx.Config().ScanDirectories
	}
	if len(roots) == 0 {
		return cmd.PrintJSONError(errors.New("no scan directories configured (add one with 'fusen dirs add <dir>')"))
	}

	opts := watch.Options{
		Scan:     e.options(c),
		Debounce: debounce,
		Initial:  initial,
		Out:      cmd.Text(),
		OnBatch: func(o scan.Outcome) {
			log.Event("scan:watch", "reconcile").
				Count(o.Result.Total()).
				Write(o.Err)
			if o.Err != nil {
				fmt.Fprintf(c.ErrOrStderr(), "reconcile failed: %v\n", o.Err)
				return
			}
			if cmd.JSON() {
				_ = cmd.PrintJSON(o.Result)
				return
			}
			if !o.Result.Empty() {
				fmt.Fprintf(cmd.Out(), "%s  added %d, removed %d\n",
					time.Now().Format("15:04:05"), len(o.Result.Added), len(o.Result.Removed))
			}
		},
	}

	w, err := watch.New(e.ctx.Service(), roots, opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("watch: %w", err))
	}

	ctx, stop := interruptible(c.Context())
	defer stop()

	go func() {
		select {
		case <-w.Ready():
			fmt.Fprintf(cmd.Text(), "Watching %d director(ies); Ctrl-C to stop\n", len(roots))
		case <-ctx.Done():
		}
	}()

	err = w.Run(ctx)
	log.Event("scan:watch", "watch").Detail("roots", roots).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("watch: %w", err))
	}
	return nil
}
