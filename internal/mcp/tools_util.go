// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers return safe defaults when
// optional parameters are missing.
//
// Design: extraction is permissive. An LLM that omits an optional parameter
// or sends "true" as a string gets the default rather than a type error it
// may struggle to interpret.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map. JSON
// booleans decode as Go bool values, so a type assertion suffices.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getStrings extracts a string array parameter. JSON arrays decode as []any,
// so each element is asserted separately and non-strings are skipped. A
// plain string is accepted as a one-element list, since clients often send
// a single path that way. Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	switch v := args[name].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return v
	}
	return nil
}

// requirePaths extracts the "paths" parameter or returns an error result.
func requirePaths(req mcp.CallToolRequest) ([]string, *mcp.CallToolResult) {
	paths := getStrings(req, "paths")
	if len(paths) == 0 {
		return nil, mcp.NewToolResultError("paths is required")
	}
	return paths, nil
}

// jsonResult serialises v as indented JSON in an MCP text result. LLMs parse
// indented output more reliably than compact JSON. Marshalling errors become
// error results so every failure reaches the client the same way.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
