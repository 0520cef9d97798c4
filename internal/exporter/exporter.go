// Package exporter writes the catalog out as a portable YAML mapping.
//
// The file maps every tracked path to its tags in the order they were
// attached. A path with no tags is written with an empty list, so
// importing the file back recreates the catalog exactly:
//
//	/media/film.mkv:
//	  - anime
//	  - watched
//	/media/other.mkv: []
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/fusen/internal/service"
)

// Stdout is the destination name that writes to the command's output.
const Stdout = "-"

// Mapping is path to ordered tags. A bare path maps to an empty slice.
type Mapping map[string][]string

// Options configures an export operation.
type Options struct {
	Force bool // Overwrite an existing destination file
}

// Result contains the outcome of an export operation.
type Result struct {
	Paths int    `json:"paths"` // Number of paths written
	Tags  int    `json:"tags"`  // Number of path/tag pairs written
	Dest  string `json:"dest"`  // File written, or "-" for stdout
}

// Build reads the whole catalog into a Mapping. A storage error is returned
// rather than an empty mapping, so an export never silently truncates.
func Build(ctx context.Context, svc service.Service) (Mapping, error) {
	edges, err := svc.Edges(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	m := make(Mapping)
	for _, e := range edges {
		tags, ok := m[e.Path]
		if !ok {
			tags = []string{}
		}
		if !e.Bare() {
			tags = append(tags, *e.Tag)
		}
		m[e.Path] = tags
	}
	return m, nil
}

// Count returns the number of path/tag pairs in the mapping.
func (m Mapping) Count() int {
	n := 0
	for _, tags := range m {
		n += len(tags)
	}
	return n
}

// Write encodes m as YAML. Keys come out sorted, so two exports of the same
// catalog are byte-identical.
func Write(w io.Writer, m Mapping) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if len(m) == 0 {
		// An empty map encodes as "{}", which reads back as an empty mapping.
		m = Mapping{}
	}
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return enc.Close()
}

// Run exports the catalog to dst. A dst of "-" writes the YAML to w;
// otherwise the file is written and a summary line printed to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	result := Result{Dest: dst}

	m, err := Build(ctx, svc)
	if err != nil {
		return result, err
	}
	result.Paths = len(m)
	result.Tags = m.Count()

	if dst == Stdout {
		return result, Write(w, m)
	}

	dir, name := filepath.Split(filepath.Clean(dst))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, fmt.Errorf("creating directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return result, fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if err := writeFileInRoot(root, name, m, opts.Force); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "Exported %d paths (%d tags) to %s\n", result.Paths, result.Tags, dst)
	return result, nil
}

// writeFileInRoot writes the mapping to name within root, refusing to
// replace an existing file unless force is set.
func writeFileInRoot(root *os.Root, name string, m Mapping, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", name, err)
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
