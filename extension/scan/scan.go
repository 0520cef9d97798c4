// Package scan provides the scan extension for fusen.
// It registers commands: scan, prune, watch, and dirs (add, rm, ls), and
// the fusen_dirs MCP tool.
package scan

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/scan"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the scan extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "scan" - this extension keeps the catalog in step with disk.
func (e *Extension) Name() string { return "scan" }

// Init keeps the shared context; scan roots come from its settings.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns scan, prune, watch and dirs.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newScanCmd(),
		e.newPruneCmd(),
		e.newWatchCmd(),
		e.newDirsCmd(),
	}
}

// MCPTools returns the scan directory registry tool.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{dirsTool()}
}

// interruptible returns a context cancelled by Ctrl-C or SIGTERM, so a long
// walk stops cleanly without writing half a batch.
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// options builds reconciler options from settings, letting flags that were
// set explicitly override them.
func (e *Extension) options(c *cobra.Command) scan.Options {
	opts := scan.FromConfig(e.ctx.Config(), e.ctx.Logger())
	if c.Flags().Changed(extension.FlagRecursive) {
		r, _ := c.Flags().GetBool(extension.FlagRecursive)
		opts.Mode = scan.ModeOf(r)
	}
	if f := c.Flags().Lookup(extension.FlagSkipHidden); f != nil {
		opts.SkipHidden, _ = c.Flags().GetBool(extension.FlagSkipHidden)
	}
	if f := c.Flags().Lookup(extension.FlagDryRun); f != nil {
		opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	}
	return opts
}
