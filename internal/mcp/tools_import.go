// tools_import.go implements the MCP tool for importing a mapping file.
//
// Design: the clear and delete behaviour comes from the settings file, as it
// does for the CLI. Dry-run lets an LLM preview the change first.

package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/importer"
	"github.com/jpl-au/fusen/internal/log"
)

// importCatalog handles fusen_import tool calls.
func (h *handlers) importCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	cfg, err := h.settings()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := importer.Options{
		ClearTags:    cfg.ClearOnImport(),
		DeleteSource: cfg.DeleteAfterImport(),
		DryRun:       getBool(req, "dry_run", false),
		Logger:       h.log,
	}

	var buf bytes.Buffer
	result, err := importer.Run(ctx, &buf, h.svc, path, opts)

	log.Event("mcp:import", "import").Path(path).Count(result.Imported).Detail("skipped", len(result.Skipped)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"result":  result,
		"dry_run": opts.DryRun,
	})
}
