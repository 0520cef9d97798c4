// Package transfer provides the transfer extension for fusen.
// It registers commands: import, export, diff.
//
// All three speak the same YAML mapping of path to tag list, so a catalog
// exported on one machine can be diffed against and imported on another.
package transfer

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the transfer extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "transfer" - this extension moves catalogs in and out.
func (e *Extension) Name() string { return "transfer" }

// Init keeps the shared context; import reads its settings from it.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns import, export and diff.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newImportCmd(),
		e.newExportCmd(),
		e.newDiffCmd(),
	}
}

// MCPTools returns nil - fusen_import and fusen_export are built into
// internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
