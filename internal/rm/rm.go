// Package rm stops tracking paths.
//
// Removal only touches the catalog: the files on disk are never deleted,
// and every tag edge of a removed path goes with it.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/fusen/internal/service"
)

// Result contains the outcome of a remove operation.
type Result struct {
	Removed []string `json:"removed"`           // paths that were tracked
	Missing []string `json:"missing,omitempty"` // paths that were not
	Edges   int64    `json:"edges"`             // rows deleted
}

// Run removes each path from the catalog. Untracked paths are reported in
// Missing; they are not an error.
func Run(ctx context.Context, w io.Writer, svc service.Service, paths []string) (Result, error) {
	result := Result{Removed: []string{}}
	if len(paths) == 0 {
		return result, fmt.Errorf("no paths given")
	}

	norm := make([]string, 0, len(paths))
	for _, p := range paths {
		n, err := svc.NormalisePath(p)
		if err != nil {
			return result, err
		}
		if svc.Exists(ctx, n) {
			norm = append(norm, n)
		} else {
			result.Missing = append(result.Missing, n)
		}
	}

	for _, p := range result.Missing {
		fmt.Fprintf(w, "Not tracked: %s\n", p)
	}
	if len(norm) == 0 {
		return result, nil
	}

	n, err := svc.RemovePaths(ctx, norm)
	if err != nil {
		return result, err
	}
	result.Removed = norm
	result.Edges = n

	for _, p := range norm {
		fmt.Fprintf(w, "Removed %s\n", p)
	}
	return result, nil
}
