// resources.go implements MCP resource handlers for read-only catalog access.
//
// Resources let a client load catalog content as context without calling a
// tool: the whole catalog as YAML, or the paths carrying one tag.
//
// Design: resource URIs are fusen://catalog and fusen://tags/{tag}. The tag
// segment is matched exactly, the same as a single-term exact query.

package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/fusen/internal/exporter"
)

const (
	// CatalogURI names the whole-catalog resource.
	CatalogURI   = "fusen://catalog"
	tagURIPrefix = "fusen://tags/"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyTag indicates a tag resource URI with no tag.
	ErrEmptyTag = errors.New("empty tag")
)

// readCatalog handles fusen://catalog resource requests.
func (h *handlers) readCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	m, err := exporter.Build(ctx, h.svc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := exporter.Write(&buf, m); err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/yaml",
			Text:     buf.String(),
		},
	}, nil
}

// readTag handles fusen://tags/{tag} resource requests.
func (h *handlers) readTag(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	t, err := parseTagURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	paths := h.svc.PathsWithTag(ctx, t).Sorted()

	text := strings.Join(paths, "\n")
	if text != "" {
		text += "\n"
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// parseTagURI extracts the tag from fusen://tags/{tag}. The tag may be
// percent-encoded.
func parseTagURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, tagURIPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, tagURIPrefix)
	if rest == "" {
		return "", ErrEmptyTag
	}
	t, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return t, nil
}
