// write.go implements path-level mutations of the catalog relation.
//
// Separated from tags.go because these operations decide whether a path is
// tracked at all, while tag operations only change the labels on tracked
// paths. Both share the dedup pass defined here.
//
// Design: each call is one transaction. Batches coming from the reconciler
// can hold thousands of paths; running them in one transaction is both
// atomic and much faster than one implicit transaction per row.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// AddPaths inserts a bare edge for every path that does not already have one.
func (s *SQLiteStore) AddPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, p := range paths {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO master (path, tag)
				SELECT ?, NULL
				WHERE NOT EXISTS (SELECT 1 FROM master WHERE path = ? AND tag IS NULL)
			`, p, p)
			if err != nil {
				return fmt.Errorf("add path %s: %w", p, err)
			}
		}
		return nil
	})
}

// RemovePaths deletes every edge of each path. Unknown paths are ignored.
func (s *SQLiteStore) RemovePaths(ctx context.Context, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	var removed int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		for _, p := range paths {
			result, err := tx.ExecContext(ctx, `DELETE FROM master WHERE path = ?`, p)
			if err != nil {
				return fmt.Errorf("remove path %s: %w", p, err)
			}
			if n, err := result.RowsAffected(); err == nil {
				removed += n
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Dedup removes duplicate (path, tag) rows, keeping the row with the
// smallest id in each group. NULL tags group together in SQLite GROUP BY.
func (s *SQLiteStore) Dedup(ctx context.Context) (int64, error) {
	var removed int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		n, err := dedup(ctx, tx)
		removed = n
		return err
	})
	return removed, err
}

func dedup(ctx context.Context, tx *sql.Tx) (int64, error) {
	result, err := tx.ExecContext(ctx, `
		DELETE FROM master
		WHERE id NOT IN (SELECT MIN(id) FROM master GROUP BY path, tag)
	`)
	if err != nil {
		return 0, fmt.Errorf("dedup: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
