// tools_catalog.go implements MCP tools that add and remove catalog paths
// and report catalog counts.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/log"
)

// addPaths handles fusen_add tool calls.
func (h *handlers) addPaths(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, bad := requirePaths(req)
	if bad != nil {
		return bad, nil
	}

	err := h.svc.AddPaths(ctx, paths)

	log.Event("mcp:add", "add").Count(len(paths)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("tracking %d path(s)", len(paths))), nil
}

// removePaths handles fusen_remove tool calls.
func (h *handlers) removePaths(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, bad := requirePaths(req)
	if bad != nil {
		return bad, nil
	}

	n, err := h.svc.RemovePaths(ctx, paths)

	log.Event("mcp:remove", "remove").Count(len(paths)).Detail("edges", n).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"paths":         len(paths),
		"edges_removed": n,
	})
}

// stats handles fusen_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.svc.Stats(ctx)

	log.Event("mcp:stats", "stats").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}
