// interfaces.go defines the storage abstraction for the tag catalog.
//
// Separated from the SQLite implementation so the catalog service can be
// tested against a mocked connection. The interfaces are granular (Reader,
// Writer, Maintainer) so consumers only depend on the capabilities they need:
// the query evaluator reads, the reconciler reads and writes, and only the
// maintenance commands touch Maintainer.
//
// Design: every mutating method is one logical operation and runs inside a
// single transaction. A multi-path add either lands completely or not at all.

package store

import (
	"context"
	"database/sql"
)

// Reader defines read-only catalog queries. Missing data is never an error:
// an unknown tag or path yields an empty slice.
type Reader interface {
	// Paths returns every distinct tracked path, sorted.
	Paths(ctx context.Context) ([]string, error)

	// Tags returns every distinct non-NULL tag, sorted.
	Tags(ctx context.Context) ([]string, error)

	// TagsForPath returns the tags on one path in insertion order.
	TagsForPath(ctx context.Context, path string) ([]string, error)

	// PathsWithTag returns the distinct paths carrying tag, sorted.
	PathsWithTag(ctx context.Context, tag string) ([]string, error)

	// Edges returns the whole relation ordered by id. Export relies on
	// this order to reproduce tag order per path.
	Edges(ctx context.Context) ([]Edge, error)

	// Exists reports whether path has at least one edge.
	Exists(ctx context.Context, path string) (bool, error)

	// Stats returns aggregate counts for diagnostics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify the relation.
type Writer interface {
	// AddPaths tracks each path with a bare edge. Paths that already have
	// a bare edge are left alone, so repeated adds are idempotent.
	AddPaths(ctx context.Context, paths []string) error

	// AddTags inserts the cross product paths x tags and then removes
	// duplicate (path, tag) rows, keeping the oldest.
	AddTags(ctx context.Context, paths, tags []string) error

	// RemoveTags deletes the matching (path, tag) edges. Missing edges are
	// no-ops. A path whose last edge is removed is no longer tracked.
	RemoveTags(ctx context.Context, paths, tags []string) error

	// RemovePaths deletes every edge of each path and returns the number
	// of rows removed.
	RemovePaths(ctx context.Context, paths []string) (int64, error)

	// ClearTags replaces all edges of each path with a single bare edge.
	ClearTags(ctx context.Context, paths []string) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Dedup removes duplicate (path, tag) rows, keeping the smallest id.
	Dedup(ctx context.Context) (int64, error)

	// Vacuum deduplicates and then compacts the database file.
	Vacuum(ctx context.Context) (int64, error)
}

// Store is the full persistence interface for the catalog.
type Store interface {
	Reader
	Writer
	Maintainer
}
