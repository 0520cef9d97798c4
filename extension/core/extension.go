// Package core provides the core extension for fusen.
// It registers commands: init, config, serve, guide, db, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "core" - this extension provides the fundamental commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// Init stores the shared context for the db subcommands.
func (e *Extension) Init(ctx extension.Context) error {
	extCtx = ctx
	return nil
}

// MCPTools returns nil. The catalog tools are built into the MCP server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server opens the catalog itself.
// version: Displays build info, doesn't need the catalog.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "version"}
}
