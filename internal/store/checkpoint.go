// checkpoint.go implements WAL checkpointing.
//
// Called when the process shuts down and periodically by `fusen watch`,
// which can run for days and would otherwise let the -wal file grow with
// every reconciliation batch.
//
// Design: TRUNCATE mode flushes the WAL fully and resets it to zero bytes,
// so a catalog copied by hand after a command is self-contained.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL frames back to the main database file and
// truncates the WAL.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
