// tools_guide.go implements the MCP tool for accessing help content.
//
// The guide tool gives LLMs the same pages as "fusen guide", so they can
// look up query syntax or the import format without outside help.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/guide"
	"github.com/jpl-au/fusen/internal/log"
)

// getGuide handles fusen_guide tool calls.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "read").Detail("topic", topic).Write(err)

	if err != nil {
		// If topic not found, return list of available topics
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            fmt.Sprintf("no guide page %q", topic),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}
