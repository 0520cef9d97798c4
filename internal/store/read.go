// read.go implements whole-catalog reads: the tracked path set and the raw
// edge relation used by export.

package store

import (
	"context"
	"fmt"
)

// Paths returns every distinct tracked path.
func (s *SQLiteStore) Paths(ctx context.Context) ([]string, error) {
	paths, err := s.queryStrings(ctx, `SELECT DISTINCT path FROM master ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	return paths, nil
}

// Edges returns the full relation in insertion order.
func (s *SQLiteStore) Edges(ctx context.Context) ([]Edge, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path, tag FROM master ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Exists reports whether path is tracked.
func (s *SQLiteStore) Exists(ctx context.Context, path string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM master WHERE path = ?`, path).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", path, err)
	}
	return n > 0, nil
}
