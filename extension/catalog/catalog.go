// Package catalog provides the catalog extension for fusen.
// It registers commands: add, rm, ls, tags, and tag (add, rm, clear, ls).
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the catalog extension.
type Extension struct {
	ctx extension.Context
	svc service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "catalog" - this extension edits what the catalog tracks.
func (e *Extension) Name() string { return "catalog" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	e.svc = ctx.Service()
	return nil
}

// Commands returns the path and tag commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newAddCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
		e.newTagsCmd(),
		e.newTagCmd(),
	}
}

// MCPTools returns nil - the tagging tools are built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
