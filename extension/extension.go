// Package extension provides the plugin architecture for fusen. Extensions
// group related commands (and optionally MCP tools) and register at init
// time, so a command group can be added without touching the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for fusen extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server, in addition
	// to the built-in catalog tools.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the catalog is
// open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't need the catalog open. Commands returned by NoStoreCommands() will
// not trigger catalog initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before the data directory exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Utility commands that don't touch the catalog (guide, version)
type Storeless interface {
	NoStoreCommands() []string
}
