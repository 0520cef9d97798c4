// reconcile.go implements scan and prune.
//
// Both run the walk on a scan.Worker so Ctrl-C cancels it; the catalog is
// written in one batch at the end, so an interrupted scan changes nothing.

package scan

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/scan"
)

func (e *Extension) newScanCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "scan [dir]...",
		Short: "Track new files under the scan directories",
		Long: `Walk the scan directories (or the ones given) and track every file the
catalog does not know yet. Existing paths and their tags are untouched.

With --startup, paths whose files have gone are pruned first, so a file
moved between directories keeps being tracked under its new name.

  fusen scan
  fusen scan --startup
  fusen scan --recursive=false ~/Downloads`,
		RunE: e.runScan,
	}
	c.Flags().Bool(extension.FlagStartup, false, "Prune vanished paths before scanning")
	c.Flags().BoolP(extension.FlagRecursive, "r", true, "Walk subdirectories (default from scanRecursive)")
	c.Flags().Bool(extension.FlagSkipHidden, false, "Skip dot files and dot directories")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would change")
	return c
}

func (e *Extension) runScan(c *cobra.Command, args []string) error {
	startup, _ := c.Flags().GetBool(extension.FlagStartup)
	opts := e.options(c)

	roots := args
	if len(roots) == 0 {
		roots = e.ctx.Config().ScanDirectories
	}
	if len(roots) == 0 && !startup {
		return cmd.PrintJSONError(errors.New("no scan directories configured (add one with 'fusen dirs add <dir>')"))
	}

	job := scan.JobReconcile
	if startup {
		job = scan.JobStartup
	}

	ctx, stop := interruptible(c.Context())
	defer stop()
	out := scan.Start(ctx, cmd.Text(), e.ctx.Service(), roots, job, opts).Wait()

	log.Event("scan:scan", "scan").
		Count(out.Result.Total()).
		Detail("roots", roots).
		Detail("startup", startup).
		Detail("dry_run", opts.DryRun).
		Write(out.Err)

	if out.Err != nil {
		return cmd.PrintJSONError(fmt.Errorf("scan: %w", out.Err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(out.Result)
	}
	summary(cmd.Out(), out.Result, opts.DryRun)
	return nil
}

func (e *Extension) newPruneCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune",
		Short: "Stop tracking paths whose files no longer exist",
		Long: `Check every tracked path on disk and remove the ones that are gone,
together with their tags. Paths that cannot be inspected are kept.`,
		Args: cobra.NoArgs,
		RunE: e.runPrune,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be removed")
	return c
}

func (e *Extension) runPrune(c *cobra.Command, _ []string) error {
	opts := e.options(c)

	ctx, stop := interruptible(c.Context())
	defer stop()
	result, err := scan.Prune(ctx, cmd.Text(), e.ctx.Service(), opts)

	log.Event("scan:prune", "prune").
		Count(len(result.Removed)).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("prune: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	summary(cmd.Out(), result, opts.DryRun)
	return nil
}

// summary prints the closing line of a scan or prune.
func summary(w io.Writer, r scan.Result, dryRun bool) {
	for _, root := range r.Skipped {
		fmt.Fprintf(w, "Skipped unreadable directory: %s\n", root)
	}
	for _, p := range r.Rejected {
		fmt.Fprintf(w, "Skipped invalid path: %s\n", p)
	}
	if r.Empty() {
		fmt.Fprintln(w, "Catalog is up to date")
		return
	}
	if dryRun {
		fmt.Fprintf(w, "Would add %d, would remove %d\n", len(r.Added), len(r.Removed))
		return
	}
	fmt.Fprintf(w, "Added %d, removed %d\n", len(r.Added), len(r.Removed))
}
