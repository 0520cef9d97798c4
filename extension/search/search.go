// Package search provides the commands that find paths in the catalog.
// Registers commands: query, glob.
package search

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search" - this extension provides path discovery commands.
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the query and glob commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newQueryCmd(),
		e.newGlobCmd(),
	}
}

// MCPTools returns nil - fusen_query is built into internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
