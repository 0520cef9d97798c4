// Package validate provides input validation for fusen's catalog values.
//
// This package enforces integrity rules at the boundary between user input
// (CLI arguments, MCP tool calls, import files) and the catalog service.
// Each validation function returns nil on success or an error wrapping one
// of the sentinels in errors.go.
//
// Validation is minimal. Paths and tags are opaque strings to the catalog;
// only inputs that cannot be stored or matched sensibly (empty values, NUL
// bytes, oversized paths) are rejected.
//
//	if errors.Is(err, validate.ErrInvalidPath) {
//	    // handle invalid path
//	}
package validate
