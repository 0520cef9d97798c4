// Package mcp implements the Model Context Protocol server, exposing the
// fusen catalog to LLM clients. An assistant can query by tag, tag files,
// and keep the catalog in step with the scan directories through the same
// operations the CLI uses.
package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/jpl-au/fusen/extension"
	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/config"
	"github.com/jpl-au/fusen/internal/service"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve opens the catalog in dir and serves MCP over stdio until the client
// disconnects. Diagnostics go to logger, which must not write to stdout:
// stdout carries the JSON-RPC stream. tools are extension-contributed tools
// registered alongside the built-in ones.
func Serve(dir string, logger *zap.Logger, tools []extension.MCPTool) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("mcp")

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	svc, err := catalog.Open(dir, catalog.Options{MaxPath: cfg.MaxPath(), Logger: logger})
	if err != nil {
		log.Error("failed to open catalog", zap.Error(err))
		return err
	}
	defer svc.Close()

	s := New(svc, dir, logger)
	AddExtensionTools(s, extension.NewContext(svc, dir, cfg, logger), tools)
	log.Info("fusen MCP server ready", zap.String("version", Version), zap.String("transport", "stdio"))

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		log.Info("server stopped")
		return nil
	}
	return err
}

// New builds the MCP server over svc. dir is the data directory, used to
// read and write settings.
func New(svc service.Service, dir string, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handlers{svc: svc, dir: dir, log: logger}

	s := server.NewMCPServer(
		"fusen",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	return s
}

// AddExtensionTools registers extension tools on s, binding each handler to
// extCtx.
func AddExtensionTools(s *server.MCPServer, extCtx extension.Context, tools []extension.MCPTool) {
	for _, t := range tools {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, extCtx, req)
		})
	}
}

// handlers provides MCP request handlers with access to the catalog.
type handlers struct {
	svc service.Service
	dir string
	log *zap.Logger
}

// settings loads the settings file afresh so changes made through
// fusen_config_set or the CLI apply to the next call.
func (h *handlers) settings() (*config.Config, error) {
	return config.Load(h.dir)
}

// registerResources adds URI-based read access to the catalog.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcp.NewResource(
			CatalogURI,
			"Catalog",
			mcp.WithResourceDescription("The whole catalog as a YAML path-to-tags mapping"),
			mcp.WithMIMEType("application/yaml"),
		),
		h.readCatalog,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			tagURIPrefix+"{tag}",
			"Tagged paths",
			mcp.WithTemplateDescription("Paths carrying a tag, one per line"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readTag,
	)
}

// registerTools exposes catalog operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("fusen_query",
			mcp.WithDescription("Find paths by tag. Comma-separated tags are intersected; a leading '-' excludes a tag. Empty returns every path."),
			mcp.WithString("query", mcp.Description("Tag query, e.g. 'anime,-watched'")),
			mcp.WithBoolean("exact", mcp.Description("Only match tags; without this, paths containing a positive term as a substring are included too")),
		),
		h.query,
	)

	s.AddTool(
		mcp.NewTool("fusen_add",
			mcp.WithDescription("Track paths in the catalog without tagging them"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths"), mcp.WithStringItems()),
		),
		h.addPaths,
	)

	s.AddTool(
		mcp.NewTool("fusen_remove",
			mcp.WithDescription("Stop tracking paths, dropping all their tags. Files on disk are not touched."),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths"), mcp.WithStringItems()),
		),
		h.removePaths,
	)

	s.AddTool(
		mcp.NewTool("fusen_tag",
			mcp.WithDescription("Add tags to paths, tracking any path not yet in the catalog"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths"), mcp.WithStringItems()),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("fusen_untag",
			mcp.WithDescription("Remove tags from paths"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths"), mcp.WithStringItems()),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags")),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("fusen_clear",
			mcp.WithDescription("Remove every tag from paths, keeping them tracked"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths"), mcp.WithStringItems()),
		),
		h.tagClear,
	)

	s.AddTool(
		mcp.NewTool("fusen_tags",
			mcp.WithDescription("List the tags on a path, or every tag in use"),
			mcp.WithString("path", mcp.Description("File path (optional, list all if empty)")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("fusen_scan",
			mcp.WithDescription("Add files not yet in the catalog from the configured scan directories, or from the given directories"),
			mcp.WithArray("dirs", mcp.Description("Directories to scan instead of the configured ones"), mcp.WithStringItems()),
			mcp.WithBoolean("prune", mcp.Description("Remove vanished paths first, as on startup")),
			mcp.WithBoolean("dry_run", mcp.Description("Show what would change without writing")),
		),
		h.scan,
	)

	s.AddTool(
		mcp.NewTool("fusen_prune",
			mcp.WithDescription("Remove catalog paths whose files no longer exist"),
			mcp.WithBoolean("dry_run", mcp.Description("Show what would be removed without writing")),
		),
		h.prune,
	)

	s.AddTool(
		mcp.NewTool("fusen_export",
			mcp.WithDescription("Export the catalog as a YAML path-to-tags mapping. Without dest the YAML is returned."),
			mcp.WithString("dest", mcp.Description("File to write")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		h.exportCatalog,
	)

	s.AddTool(
		mcp.NewTool("fusen_import",
			mcp.WithDescription("Import a YAML path-to-tags mapping file, merging tags and creating unknown paths"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Mapping file to import")),
			mcp.WithBoolean("dry_run", mcp.Description("Show what would be imported without importing")),
		),
		h.importCatalog,
	)

	s.AddTool(
		mcp.NewTool("fusen_config_get",
			mcp.WithDescription("Get a setting"),
			mcp.WithString("key", mcp.Description("Setting key, or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("fusen_config_set",
			mcp.WithDescription("Change a setting"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Setting key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value; lists are separated by the system path list separator")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("fusen_guide",
			mcp.WithDescription("Get help on fusen: query syntax, tags, scanning, import format"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'query', 'import') or empty for index")),
		),
		h.getGuide,
	)

	s.AddTool(
		mcp.NewTool("fusen_stats",
			mcp.WithDescription("Catalog counts: paths, tags, edges"),
		),
		h.stats,
	)
}
