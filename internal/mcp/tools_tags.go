// tools_tags.go implements MCP tools for tagging paths.
//
// Separated from tools_catalog.go because tag operations take a tag list as
// well as paths and report the resulting tags per path, which lets an LLM
// confirm the outcome without a second call.
//
// Design: tag operations are idempotent. Adding a tag a path already has or
// removing one it lacks succeeds silently, so an LLM need not track the
// current state before calling.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/tag"
)

// tagAdd handles fusen_tag tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, bad := requirePaths(req)
	if bad != nil {
		return bad, nil
	}
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}

	result, err := tag.Add(ctx, io.Discard, h.svc, paths, tag.Split(tags))

	log.Event("mcp:tag", "tag").Count(len(paths)).Detail("tags", tags).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// tagRemove handles fusen_untag tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, bad := requirePaths(req)
	if bad != nil {
		return bad, nil
	}
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}

	result, err := tag.Remove(ctx, io.Discard, h.svc, paths, tag.Split(tags))

	log.Event("mcp:untag", "untag").Count(len(paths)).Detail("tags", tags).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// tagClear handles fusen_clear tool calls.
func (h *handlers) tagClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, bad := requirePaths(req)
	if bad != nil {
		return bad, nil
	}

	result, err := tag.Clear(ctx, io.Discard, h.svc, paths)

	log.Event("mcp:clear", "clear").Count(len(paths)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// listTags handles fusen_tags tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := getString(req, "path", "")
	if path == "" {
		tags := h.svc.Tags(ctx)
		log.Event("mcp:tags", "list_tags").Count(tags.Len()).Write(nil)
		return jsonResult(tags)
	}

	result, err := tag.List(ctx, io.Discard, h.svc, path)

	log.Event("mcp:tags", "list_tags").Path(path).Count(len(result.Tags)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}
