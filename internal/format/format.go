// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// catalog logic while this package handles presentation: column alignment
// and tree rendering of tracked paths.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpl-au/fusen/internal/path"
)

// Entry is a tracked path with its tags, in the order they were added.
type Entry struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

// Paths prints paths one per line.
func Paths(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Tagged prints each path followed by its comma-separated tags, with the
// tag column aligned. Untagged paths show "-".
func Tagged(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	maxPath := 0
	for _, e := range entries {
		if len(e.Path) > maxPath {
			maxPath = len(e.Path)
		}
	}

	for _, e := range entries {
		tags := "-"
		if len(e.Tags) > 0 {
			tags = strings.Join(e.Tags, ", ")
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", maxPath, e.Path, tags); err != nil {
			return err
		}
	}
	return nil
}

// Tags prints tags one per line with the number of paths carrying each.
func Tags(w io.Writer, counts map[string]int) error {
	names := make([]string, 0, len(counts))
	width := 1
	for name, n := range counts {
		names = append(names, name)
		if l := len(fmt.Sprint(n)); l > width {
			width = l
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%*d  %s\n", width, counts[name], name); err != nil {
			return err
		}
	}
	return nil
}

// Tree prints paths as a directory tree rooted at their common directory.
func Tree(w io.Writer, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		isFile   bool
	}
	newNode := func() *node { return &node{children: make(map[string]*node)} }

	base := commonDir(paths)
	root := newNode()

	for _, p := range paths {
		rel, err := filepath.Rel(base, p)
		if err != nil {
			rel = p
		}
		current := root
		parts := strings.Split(filepath.ToSlash(rel), "/")
		for i, part := range parts {
			if current.children[part] == nil {
				current.children[part] = newNode()
			}
			current = current.children[part]
			if i == len(parts)-1 {
				current.isFile = true
			}
		}
	}

	if _, err := fmt.Fprintln(w, base); err != nil {
		return err
	}

	var printNode func(n *node, prefix string) error
	printNode = func(n *node, prefix string) error {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			suffix := ""
			if !child.isFile && len(child.children) > 0 {
				suffix = "/"
			}

			if _, err := fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix); err != nil {
				return err
			}

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}

			if len(child.children) > 0 {
				if err := printNode(child, pfx); err != nil {
					return err
				}
			}
		}
		return nil
	}

	return printNode(root, "")
}

// commonDir returns the deepest directory containing every path.
func commonDir(paths []string) string {
	dir := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		for dir != filepath.Dir(dir) && !path.Within(p, dir) {
			dir = filepath.Dir(dir)
		}
	}
	return dir
}
