// Package query evaluates boolean tag queries against the catalog.
//
// A query is comma-separated text. Each token names a tag; a leading "-"
// negates it. "anime, -dub" means "tagged anime and not tagged dub".
//
// Evaluation has two parts:
//   - The tag part starts from every tracked path, intersects with the
//     paths of each positive tag and subtracts the paths of each negative
//     tag. A positive tag that does not exist empties the tag part at once;
//     a negative tag that does not exist excludes nothing.
//   - Unless exact matching is requested, every path whose text contains a
//     positive token (case-insensitively) is then added, so "anime" also
//     finds /media/Anime/x.mkv when nothing is tagged anime.
//
// An empty query matches every path. Evaluation only reads the catalog.
package query

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/fusen/internal/service"
	"github.com/jpl-au/fusen/internal/tag"
)

// Source is the read side of the catalog the evaluator needs.
type Source interface {
	Paths(ctx context.Context) service.Set
	Tags(ctx context.Context) service.Set
	PathsWithTag(ctx context.Context, tag string) service.Set
}

// Query is a parsed query.
type Query struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Parse splits text into positive and negative tokens. Tokens are trimmed
// and sanitised like tags; empty tokens, a bare "-" and the reserved word
// "path" are dropped, as are repeats.
func Parse(text string) Query {
	q := Query{Positive: []string{}, Negative: []string{}}
	seen := map[string]bool{}
	for _, tok := range tag.Split(text) {
		neg := strings.HasPrefix(tok, "-")
		name := strings.TrimPrefix(tok, "-")
		if name == "" || name == tag.PathKey {
			continue
		}
		key := tok
		if neg {
			key = "-" + name
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if neg {
			q.Negative = append(q.Negative, name)
		} else {
			q.Positive = append(q.Positive, name)
		}
	}
	return q
}

// Empty reports whether the query has no tokens at all.
func (q Query) Empty() bool {
	return len(q.Positive) == 0 && len(q.Negative) == 0
}

// String renders the query back into its canonical text form.
func (q Query) String() string {
	parts := make([]string, 0, len(q.Positive)+len(q.Negative))
	parts = append(parts, q.Positive...)
	for _, n := range q.Negative {
		parts = append(parts, "-"+n)
	}
	return strings.Join(parts, ",")
}

// Evaluate resolves q to a set of paths.
func Evaluate(ctx context.Context, src Source, q Query, exact bool) service.Set {
	all := src.Paths(ctx)
	if q.Empty() {
		return all
	}

	result := tagPart(ctx, src, all, q)
	if !exact {
		result.Union(substringPart(all, q.Positive))
	}
	return result
}

func tagPart(ctx context.Context, src Source, all service.Set, q Query) service.Set {
	known := src.Tags(ctx)
	for _, p := range q.Positive {
		if !known.Contains(p) {
			return service.NewSet()
		}
	}

	result := all.Clone()
	for _, p := range q.Positive {
		result.Intersect(src.PathsWithTag(ctx, p))
	}
	for _, n := range q.Negative {
		if known.Contains(n) {
			result.Subtract(src.PathsWithTag(ctx, n))
		}
	}
	return result
}

func substringPart(all service.Set, positives []string) service.Set {
	out := service.NewSet()
	if len(positives) == 0 {
		return out
	}
	needles := make([]string, len(positives))
	for i, p := range positives {
		needles[i] = strings.ToLower(p)
	}
	for path := range all {
		lower := strings.ToLower(path)
		for _, n := range needles {
			if strings.Contains(lower, n) {
				out.Add(path)
				break
			}
		}
	}
	return out
}

// Result contains the outcome of a query run from the CLI or MCP.
type Result struct {
	Query Query       `json:"query"`
	Exact bool        `json:"exact"`
	Paths service.Set `json:"paths"`
	Count int         `json:"count"`
}

// Run parses text, evaluates it and prints one path per line to w in
// lexical order.
func Run(ctx context.Context, w io.Writer, src Source, text string, exact bool) Result {
	q := Parse(text)
	paths := Evaluate(ctx, src, q, exact)
	for _, p := range paths.Sorted() {
		fmt.Fprintln(w, p)
	}
	return Result{Query: q, Exact: exact, Paths: paths, Count: paths.Len()}
}
