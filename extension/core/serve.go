// serve.go implements the "fusen serve" command for MCP server operation.
//
// Separated from extension.go because serve blocks handling MCP requests
// over stdio instead of running once and exiting.
//
// Design: Serve is a NoStoreCommand. It opens the catalog itself so the
// connection lives exactly as long as the server.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/fusen/cmd"
	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/logger"
	"github.com/jpl-au/fusen/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio, exposing
query, tagging, scanning and import/export as tools.

  fusen serve
  fusen serve --dir /srv/fusen

Diagnostics go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.Dir(), logger.L(), extension.Tools())
}
