// Package store defines catalog persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

// Edge is a single row of the catalog relation. A path with no tags is
// represented by one bare edge whose Tag is nil.
type Edge struct {
	ID   int64   // Database primary key, insertion order
	Path string  // Absolute filesystem path
	Tag  *string // Tag label, nil for a bare edge
}

// Bare reports whether the edge carries no tag.
func (e Edge) Bare() bool {
	return e.Tag == nil
}

// Stats provides aggregate catalog statistics for `fusen db stats`.
type Stats struct {
	Paths     int64 `json:"paths"`     // Distinct tracked paths
	Tags      int64 `json:"tags"`      // Distinct tag labels
	Edges     int64 `json:"edges"`     // Total rows in the relation
	Bare      int64 `json:"bare"`      // Rows with a NULL tag
	Untagged  int64 `json:"untagged"`  // Paths that carry no tag at all
	Duplicate int64 `json:"duplicate"` // Rows the dedup pass would remove
}
