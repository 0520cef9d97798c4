// tags.go implements tag edges: adding, removing and clearing labels, and
// the per-tag and per-path lookups the query evaluator builds on.
//
// Design: AddTags inserts blindly and then runs the dedup pass rather than
// checking each (path, tag) pair first. The relation has no UNIQUE
// constraint, so duplicates are allowed to exist for the length of the
// transaction and never survive its commit.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// AddTags inserts one edge per (path, tag) pair and deduplicates.
func (s *SQLiteStore) AddTags(ctx context.Context, paths, tags []string) error {
	if len(paths) == 0 || len(tags) == 0 {
		return nil
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, p := range paths {
			for _, t := range tags {
				if _, err := tx.ExecContext(ctx, `INSERT INTO master (path, tag) VALUES (?, ?)`, p, t); err != nil {
					return fmt.Errorf("tag %s with %s: %w", p, t, err)
				}
			}
		}
		_, err := dedup(ctx, tx)
		return err
	})
}

// RemoveTags deletes the (path, tag) edges named by the cross product.
func (s *SQLiteStore) RemoveTags(ctx context.Context, paths, tags []string) error {
	if len(paths) == 0 || len(tags) == 0 {
		return nil
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, p := range paths {
			for _, t := range tags {
				if _, err := tx.ExecContext(ctx, `DELETE FROM master WHERE path = ? AND tag = ?`, p, t); err != nil {
					return fmt.Errorf("untag %s from %s: %w", t, p, err)
				}
			}
		}
		return nil
	})
}

// ClearTags drops every edge of each path and re-inserts a bare edge, so the
// path stays tracked with no tags.
func (s *SQLiteStore) ClearTags(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, p := range paths {
			if _, err := tx.ExecContext(ctx, `DELETE FROM master WHERE path = ?`, p); err != nil {
				return fmt.Errorf("clear tags on %s: %w", p, err)
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO master (path, tag) VALUES (?, NULL)`, p); err != nil {
				return fmt.Errorf("clear tags on %s: %w", p, err)
			}
		}
		return nil
	})
}

// Tags returns every distinct tag label.
func (s *SQLiteStore) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.queryStrings(ctx, `SELECT DISTINCT tag FROM master WHERE tag IS NOT NULL ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// TagsForPath returns the tags on path in the order they were added.
func (s *SQLiteStore) TagsForPath(ctx context.Context, path string) ([]string, error) {
	tags, err := s.queryStrings(ctx, `SELECT tag FROM master WHERE path = ? AND tag IS NOT NULL ORDER BY id`, path)
	if err != nil {
		return nil, fmt.Errorf("list tags for %s: %w", path, err)
	}
	return tags, nil
}

// PathsWithTag returns the distinct paths carrying tag.
func (s *SQLiteStore) PathsWithTag(ctx context.Context, tag string) ([]string, error) {
	paths, err := s.queryStrings(ctx, `SELECT DISTINCT path FROM master WHERE tag = ? ORDER BY path`, tag)
	if err != nil {
		return nil, fmt.Errorf("list paths with tag %s: %w", tag, err)
	}
	return paths, nil
}
