// Package diff shows how a mapping file differs from the current catalog.
//
// Both sides are rendered through the exporter, so the comparison is between
// two canonical documents: keys sorted, tags sanitised, the reserved word
// dropped. A file exported from this catalog and left untouched therefore
// diffs clean, and the output is a faithful preview of what import would
// bring in.
package diff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jpl-au/fusen/internal/exporter"
	"github.com/jpl-au/fusen/internal/importer"
	"github.com/jpl-au/fusen/internal/service"
	"github.com/jpl-au/fusen/internal/tag"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string          `json:"old"`               // old label
	New     string          `json:"new"`               // new label
	Diff    string          `json:"diff"`              // plain diff text
	Only    []string        `json:"only_in_file"`      // paths the catalog does not track
	Missing []string        `json:"only_in_catalog"`   // tracked paths absent from the file
	Skipped []importer.Skip `json:"skipped,omitempty"` // malformed file entries
}

// Same reports whether the two sides are identical.
func (r Result) Same() bool {
	for _, line := range strings.Split(r.Diff, "\n") {
		if strings.HasPrefix(line, "+ ") || strings.HasPrefix(line, "- ") {
			return false
		}
	}
	return true
}

// Run compares the catalog with the mapping in file and writes the diff to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, file string, colour bool) (Result, error) {
	current, err := exporter.Build(ctx, svc)
	if err != nil {
		return Result{}, err
	}

	f, err := os.Open(file)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	incoming, skips, err := Load(f, svc)
	if err != nil {
		return Result{}, err
	}

	r, err := Mappings(current, incoming, "catalog", file)
	if err != nil {
		return r, err
	}
	r.Skipped = skips

	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// Load decodes a mapping file into the form the catalog would store it in.
// Paths go through svc's normalisation; entries whose path cannot be
// normalised are kept verbatim so they still show up in the diff.
func Load(r io.Reader, svc service.Service) (exporter.Mapping, []importer.Skip, error) {
	entries, skips, err := importer.Decode(r)
	if err != nil {
		return nil, nil, err
	}
	m := make(exporter.Mapping, len(entries))
	for _, e := range entries {
		p := e.Path
		if norm, err := svc.NormalisePath(p); err == nil {
			p = norm
		}
		m[p] = tag.Clean(append(m[p], e.Tags...))
	}
	return m, skips, nil
}

// Mappings diffs two mappings rendered as export YAML.
func Mappings(oldM, newM exporter.Mapping, oldLabel, newLabel string) (Result, error) {
	var oldBuf, newBuf bytes.Buffer
	if err := exporter.Write(&oldBuf, oldM); err != nil {
		return Result{}, err
	}
	if err := exporter.Write(&newBuf, newM); err != nil {
		return Result{}, err
	}

	r := Compute(oldBuf.String(), newBuf.String(), oldLabel, newLabel)
	for p := range newM {
		if _, ok := oldM[p]; !ok {
			r.Only = append(r.Only, p)
		}
	}
	for p := range oldM {
		if _, ok := newM[p]; !ok {
			r.Missing = append(r.Missing, p)
		}
	}
	slices.Sort(r.Only)
	slices.Sort(r.Missing)
	return r, nil
}

// Compute returns a line diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	return Result{
		Old:  oldLabel,
		New:  newLabel,
		Diff: format(d),
	}
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header, or a one-line note when the
// two sides match.
func (r Result) Format(colour bool) string {
	if r.Same() {
		return fmt.Sprintf("%s matches %s\n", r.New, r.Old)
	}
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
