// vacuum.go implements catalog compaction.
//
// Separated because VACUUM rewrites the whole database file and cannot run
// inside a transaction. It is called deliberately from `fusen db vacuum`,
// never as part of normal operations.

package store

import (
	"context"
	"fmt"
)

// Vacuum removes duplicate edges and then rebuilds the database file to
// reclaim space freed by deletions. Returns the number of duplicate rows
// removed.
func (s *SQLiteStore) Vacuum(ctx context.Context) (int64, error) {
	removed, err := s.Dedup(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return removed, fmt.Errorf("vacuum: %w", err)
	}
	return removed, nil
}
