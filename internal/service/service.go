// Package service defines the shared interface for catalog operations.
// Commands, extensions and the MCP server depend on this interface rather
// than the concrete catalog, so they can be exercised against a mock.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/fusen/internal/store"
)

// Service defines all catalog operations.
//
// Writes return an error on failure. Reads never fail from the caller's
// point of view: a storage error is logged and an empty result returned,
// and an unknown path or tag is simply an empty result.
//
// Example:
//
//	svc, err := catalog.Open(dir, catalog.Options{})
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	paths := svc.PathsWithTag(ctx, "anime")
type Service interface {
	// Close checkpoints and releases database resources.
	Close() error

	// AddPaths tracks each path with no tags. Already tracked paths keep
	// their tags.
	AddPaths(ctx context.Context, paths []string) error

	// AddTags attaches every tag to every path, creating untracked paths.
	// Tags are sanitised; empty tokens and the reserved word "path" are
	// dropped.
	AddTags(ctx context.Context, paths, tags []string) error

	// RemoveTags detaches every tag from every path. Missing pairs are
	// ignored.
	RemoveTags(ctx context.Context, paths, tags []string) error

	// RemovePaths stops tracking each path and returns the number of edges
	// removed.
	RemovePaths(ctx context.Context, paths []string) (int64, error)

	// ClearTags removes all tags from each path while keeping it tracked.
	ClearTags(ctx context.Context, paths []string) error

	// Paths returns every tracked path.
	Paths(ctx context.Context) Set

	// Tags returns every tag in use.
	Tags(ctx context.Context) Set

	// TagsForPath returns the tags on path in the order they were added.
	TagsForPath(ctx context.Context, path string) []string

	// PathsWithTag returns the paths carrying tag.
	PathsWithTag(ctx context.Context, tag string) Set

	// Exists reports whether path is tracked.
	Exists(ctx context.Context, path string) bool

	// Edges returns the raw relation in insertion order. Unlike the other
	// reads it reports storage errors, because export must not silently
	// produce an empty file.
	Edges(ctx context.Context) ([]store.Edge, error)

	// Stats returns aggregate catalog counts.
	Stats(ctx context.Context) (*store.Stats, error)

	// Vacuum removes duplicate edges and compacts the database.
	Vacuum(ctx context.Context) (int64, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// NormalisePath returns the canonical catalog form of a user path.
	NormalisePath(p string) (string, error)

	// DB returns the underlying SQLite connection. Do not close it
	// directly; use Close.
	DB() *sql.DB

	// Path returns the location of the catalog database file.
	Path() string
}
