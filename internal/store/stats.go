// stats.go implements aggregate catalog statistics.
//
// Separated to collect read-only aggregate queries distinct from the
// per-path operations. They run as a handful of COUNT queries and never
// materialise the relation.

package store

import (
	"context"
	"fmt"
)

// Stats returns aggregate catalog statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	queries := []struct {
		dest *int64
		q    string
	}{
		{&st.Paths, `SELECT COUNT(DISTINCT path) FROM master`},
		{&st.Tags, `SELECT COUNT(DISTINCT tag) FROM master WHERE tag IS NOT NULL`},
		{&st.Edges, `SELECT COUNT(*) FROM master`},
		{&st.Bare, `SELECT COUNT(*) FROM master WHERE tag IS NULL`},
		{&st.Untagged, `SELECT COUNT(*) FROM (
			SELECT path FROM master GROUP BY path HAVING COUNT(tag) = 0
		)`},
		{&st.Duplicate, `SELECT COUNT(*) FROM master
			WHERE id NOT IN (SELECT MIN(id) FROM master GROUP BY path, tag)`},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.q).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	return &st, nil
}
