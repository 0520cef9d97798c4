// Package tag provides tag parsing and the tag add/remove/clear/list
// operations for the CLI layer.
//
// The operations here orchestrate catalog calls and print a one-line
// summary to w; commands pass io.Discard when the caller asked for JSON.
package tag

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Tagger is the subset of the catalog service these operations need.
type Tagger interface {
	AddTags(ctx context.Context, paths, tags []string) error
	RemoveTags(ctx context.Context, paths, tags []string) error
	ClearTags(ctx context.Context, paths []string) error
	TagsForPath(ctx context.Context, path string) []string
	NormalisePath(p string) (string, error)
}

// Result contains the outcome of a tag operation.
type Result struct {
	Paths  []string            `json:"paths,omitempty"`
	Tags   []string            `json:"tags"`
	Action string              `json:"action,omitempty"`
	After  map[string][]string `json:"after,omitempty"` // tags on each path once the operation completes
}

// Add attaches tags to every path.
func Add(ctx context.Context, w io.Writer, svc Tagger, paths, tags []string) (Result, error) {
	result := Result{Action: "add", Tags: Clean(tags)}
	if len(result.Tags) == 0 {
		return result, fmt.Errorf("no usable tags in %q", strings.Join(tags, ","))
	}

	norm, err := normalise(svc, paths)
	if err != nil {
		return result, err
	}
	result.Paths = norm

	if err := svc.AddTags(ctx, norm, result.Tags); err != nil {
		return result, err
	}
	result.After = after(ctx, svc, norm)

	fmt.Fprintf(w, "Added %s to %s\n", quoteList(result.Tags), countPaths(norm))
	return result, nil
}

// Remove detaches tags from every path.
func Remove(ctx context.Context, w io.Writer, svc Tagger, paths, tags []string) (Result, error) {
	result := Result{Action: "remove", Tags: Clean(tags)}
	if len(result.Tags) == 0 {
		return result, fmt.Errorf("no usable tags in %q", strings.Join(tags, ","))
	}

	norm, err := normalise(svc, paths)
	if err != nil {
		return result, err
	}
	result.Paths = norm

	if err := svc.RemoveTags(ctx, norm, result.Tags); err != nil {
		return result, err
	}
	result.After = after(ctx, svc, norm)

	fmt.Fprintf(w, "Removed %s from %s\n", quoteList(result.Tags), countPaths(norm))
	return result, nil
}

// Clear removes every tag from each path, leaving the paths tracked.
func Clear(ctx context.Context, w io.Writer, svc Tagger, paths []string) (Result, error) {
	result := Result{Action: "clear", Tags: []string{}}

	norm, err := normalise(svc, paths)
	if err != nil {
		return result, err
	}
	result.Paths = norm

	if err := svc.ClearTags(ctx, norm); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "Cleared tags on %s\n", countPaths(norm))
	return result, nil
}

// List prints the tags on path, one per line, in the order they were added.
func List(ctx context.Context, w io.Writer, svc Tagger, path string) (Result, error) {
	p, err := svc.NormalisePath(path)
	if err != nil {
		return Result{}, err
	}
	tags := svc.TagsForPath(ctx, p)
	if tags == nil {
		tags = []string{}
	}
	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return Result{Paths: []string{p}, Tags: tags}, nil
}

func normalise(svc Tagger, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths given")
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		n, err := svc.NormalisePath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func after(ctx context.Context, svc Tagger, paths []string) map[string][]string {
	m := make(map[string][]string, len(paths))
	for _, p := range paths {
		tags := svc.TagsForPath(ctx, p)
		if tags == nil {
			tags = []string{}
		}
		m[p] = tags
	}
	return m
}

func quoteList(tags []string) string {
	q := make([]string, len(tags))
	for i, t := range tags {
		q[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(q, ", ")
}

func countPaths(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	return fmt.Sprintf("%d paths", len(paths))
}
