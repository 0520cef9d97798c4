// Package ls lists tracked paths with optional filtering.
//
// Unlike query, ls does no boolean evaluation: it narrows the catalog by a
// single tag and/or a directory prefix, which is what "what is under
// /media/anime?" and "what did I tag favourite?" need.
package ls

import (
	"context"
	"io"
	"slices"

	"github.com/jpl-au/fusen/internal/format"
	"github.com/jpl-au/fusen/internal/path"
	"github.com/jpl-au/fusen/internal/service"
)

// Options configures a list operation.
type Options struct {
	Prefix   string // Only paths under this directory
	Tag      string // Only paths carrying this tag
	Untagged bool   // Only paths with no tags
	Tags     bool   // Show each path's tags
	Tree     bool   // Display as a directory tree
	Reverse  bool   // Reverse lexical order
}

// Result contains the outcome of a list operation.
type Result struct {
	Entries []format.Entry `json:"entries"`
}

// Count returns the number of paths listed.
func (r Result) Count() int { return len(r.Entries) }

// Paths returns the listed paths.
func (r Result) Paths() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Path
	}
	return out
}

// Run lists paths and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{Entries: []format.Entry{}}

	var paths service.Set
	if opts.Tag != "" {
		paths = svc.PathsWithTag(ctx, opts.Tag)
	} else {
		paths = svc.Paths(ctx)
	}

	prefix := ""
	if opts.Prefix != "" {
		p, err := svc.NormalisePath(opts.Prefix)
		if err != nil {
			return result, err
		}
		prefix = p
	}

	sorted := paths.Sorted()
	if opts.Reverse {
		slices.Reverse(sorted)
	}

	for _, p := range sorted {
		if prefix != "" && !path.Within(p, prefix) {
			continue
		}
		var tags []string
		if opts.Tags || opts.Untagged {
			tags = svc.TagsForPath(ctx, p)
			if opts.Untagged && len(tags) > 0 {
				continue
			}
		}
		if tags == nil {
			tags = []string{}
		}
		result.Entries = append(result.Entries, format.Entry{Path: p, Tags: tags})
	}

	switch {
	case opts.Tree:
		return result, format.Tree(w, result.Paths())
	case opts.Tags:
		return result, format.Tagged(w, result.Entries)
	default:
		return result, format.Paths(w, result.Paths())
	}
}
