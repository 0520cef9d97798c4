// tools_scan.go implements MCP tools that reconcile the catalog with the
// filesystem.
//
// Design: per-path output from the reconciler is discarded; the tool result
// carries the added and removed lists as JSON instead.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/scan"
)

// scan handles fusen_scan tool calls.
func (h *handlers) scan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.settings()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	roots := getStrings(req, "dirs")
	if len(roots) == 0 {
		roots = cfg.ScanDirectories
	}
	if len(roots) == 0 {
		return mcp.NewToolResultError("no scan directories configured; pass dirs or set scanDirectories with fusen_config_set"), nil
	}

	opts := scan.FromConfig(cfg, h.log)
	opts.DryRun = getBool(req, "dry_run", false)

	var result scan.Result
	if getBool(req, "prune", false) {
		result, err = scan.Startup(ctx, io.Discard, h.svc, roots, opts)
	} else {
		result, err = scan.Reconcile(ctx, io.Discard, h.svc, roots, opts)
	}

	log.Event("mcp:scan", "scan").Count(result.Total()).Detail("roots", roots).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// prune handles fusen_prune tool calls.
func (h *handlers) prune(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := scan.Options{DryRun: getBool(req, "dry_run", false), Logger: h.log}

	result, err := scan.Prune(ctx, io.Discard, h.svc, opts)

	log.Event("mcp:prune", "prune").Count(len(result.Removed)).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}
