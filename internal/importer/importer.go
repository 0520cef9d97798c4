// Package importer merges a YAML path-to-tags mapping into the catalog.
//
// The file format is the one exporter writes. Entries are applied one at a
// time: a malformed entry is logged and skipped, and a failed write is
// logged and counted, and in both cases the remaining entries are still
// imported. Paths not yet in the catalog are created.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jpl-au/fusen/internal/catalog"
	"github.com/jpl-au/fusen/internal/progress"
	"github.com/jpl-au/fusen/internal/service"
	"github.com/jpl-au/fusen/internal/tag"
)

// Stdin is the source name that reads the mapping from standard input.
const Stdin = "-"

// ErrNotMapping is returned when the document is not a YAML mapping at all.
var ErrNotMapping = errors.New("import file is not a path-to-tags mapping")

// Options configures an import operation.
type Options struct {
	ClearTags    bool        // Clear each path's tags before applying the file's
	DeleteSource bool        // Remove the source file after a fully successful import
	DryRun       bool        // Show what would be imported without importing
	Logger       *zap.Logger // nil discards
	Stdin        io.Reader   // Source for "-", defaults to os.Stdin
}

// Entry is one path and the tags the file lists for it.
type Entry struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

// Skip records an entry that could not be imported.
type Skip struct {
	Key    string `json:"key"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int      `json:"imported"`          // Entries applied
	Paths    []string `json:"paths"`             // Paths that were/would be imported
	Skipped  []Skip   `json:"skipped,omitempty"` // Malformed entries
	Failed   []string `json:"failed,omitempty"`  // Paths whose write failed
	Deleted  bool     `json:"deleted,omitempty"` // Source file was removed
}

// Decode reads a mapping document. Entries that are not a path with a list
// of scalar tags come back as skips wrapping catalog.ErrMalformedImportEntry;
// only a document that is not a mapping at all is an error. An empty
// document decodes to no entries.
func Decode(r io.Reader) ([]Entry, []Skip, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("parsing import file: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("%w (line %d)", ErrNotMapping, root.Line)
	}

	var entries []Entry
	var skips []Skip
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		e, reason := entry(key, val)
		if reason != "" {
			skips = append(skips, Skip{Key: key.Value, Line: key.Line, Reason: reason})
			continue
		}
		entries = append(entries, e)
	}
	return entries, skips, nil
}

// entry converts one key/value pair, returning a reason when it is malformed.
func entry(key, val *yaml.Node) (Entry, string) {
	if key.Kind != yaml.ScalarNode || key.Value == "" {
		return Entry{}, "key is not a path"
	}
	if val.Kind != yaml.SequenceNode {
		return Entry{}, "value is not a list of tags"
	}
	tags := make([]string, 0, len(val.Content))
	for _, item := range val.Content {
		if item.Kind != yaml.ScalarNode {
			return Entry{}, fmt.Sprintf("tag on line %d is not a scalar", item.Line)
		}
		tags = append(tags, item.Value)
	}
	return Entry{Path: key.Value, Tags: tags}, ""
}

// Run imports the mapping in src ("-" for stdin).
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var r io.Reader
	if src == Stdin {
		r = opts.Stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(src)
		if err != nil {
			return result, err
		}
		defer f.Close()
		r = f
	}

	entries, skips, err := Decode(r)
	if err != nil {
		return result, err
	}
	for _, s := range skips {
		log.Warn("skipping import entry",
			zap.Error(catalog.ErrMalformedImportEntry),
			zap.String("key", s.Key),
			zap.Int("line", s.Line),
			zap.String("reason", s.Reason))
		fmt.Fprintf(w, "Skipped: %s (line %d): %s\n", s.Key, s.Line, s.Reason)
	}
	result.Skipped = skips

	result, err = Apply(ctx, w, svc, entries, result, opts)
	if err != nil {
		return result, err
	}

	if opts.DeleteSource && !opts.DryRun && src != Stdin &&
		len(result.Failed) == 0 && len(result.Skipped) == 0 {
		if err := os.Remove(src); err != nil {
			return result, fmt.Errorf("removing %s: %w", src, err)
		}
		result.Deleted = true
		fmt.Fprintf(w, "Deleted: %s\n", src)
	}
	return result, nil
}

// Apply writes decoded entries into the catalog, accumulating into result.
// It only returns an error when ctx is cancelled.
func Apply(ctx context.Context, w io.Writer, svc service.Service, entries []Entry, result Result, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if len(entries) == 0 {
		return result, nil
	}

	prog := progress.New("Importing", len(entries))
	defer prog.Done()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		tags := tag.Clean(e.Tags)
		result.Paths = append(result.Paths, e.Path)

		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s %v\n", e.Path, tags)
			prog.Step()
			continue
		}

		if err := apply(ctx, svc, e.Path, tags, opts.ClearTags); err != nil {
			log.Error("import entry failed", zap.String("path", e.Path), zap.Error(err))
			fmt.Fprintf(w, "Failed: %s: %v\n", e.Path, err)
			result.Failed = append(result.Failed, e.Path)
			prog.Step()
			continue
		}

		prog.Step()
		fmt.Fprintf(w, "Imported: %s %v\n", e.Path, tags)
		result.Imported++
	}
	return result, nil
}

func apply(ctx context.Context, svc service.Service, path string, tags []string, clear bool) error {
	paths := []string{path}
	if clear {
		if err := svc.ClearTags(ctx, paths); err != nil {
			return err
		}
	}
	if len(tags) == 0 {
		return svc.AddPaths(ctx, paths)
	}
	return svc.AddTags(ctx, paths, tags)
}
