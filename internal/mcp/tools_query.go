// tools_query.go implements the fusen_query tool.

package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/log"
	"github.com/jpl-au/fusen/internal/query"
)

// query handles fusen_query tool calls. An empty query is valid and returns
// every path.
func (h *handlers) query(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := getString(req, "query", "")
	exact := getBool(req, "exact", false)

	result := query.Run(ctx, io.Discard, h.svc, text, exact)

	log.Event("mcp:query", "query").Count(result.Count).Detail("query", text).Detail("exact", exact).Write(nil)

	return jsonResult(result)
}
