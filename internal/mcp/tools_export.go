// tools_export.go implements the MCP tool for exporting the catalog.
//
// Export either returns the YAML in the tool result or writes it to a file.
// Writing has filesystem consequences (overwriting), so it refuses to
// replace an existing file unless force is set.

package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/exporter"
	"github.com/jpl-au/fusen/internal/log"
)

// exportCatalog handles fusen_export tool calls.
func (h *handlers) exportCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dest := getString(req, "dest", exporter.Stdout)
	opts := exporter.Options{Force: getBool(req, "force", false)}

	var buf bytes.Buffer
	result, err := exporter.Run(ctx, &buf, h.svc, dest, opts)

	log.Event("mcp:export", "export").Count(result.Paths).Detail("dest", dest).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if dest == exporter.Stdout {
		return mcp.NewToolResultText(buf.String()), nil
	}
	return jsonResult(result)
}
