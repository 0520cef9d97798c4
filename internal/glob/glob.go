// Package glob matches tracked paths against shell-style patterns.
//
// Patterns use path.Match syntax per segment (*, ?, [...]) plus "**" for
// any number of directories. An absolute pattern is anchored at the root;
// a relative one may match any trailing run of segments, so "*.mkv" finds
// every mkv and "anime/*.mkv" every mkv directly inside a directory named
// anime.
package glob

import (
	"path"
	"path/filepath"
	"strings"
)

// Match reports whether p matches pattern. Returns an error if the pattern
// is malformed.
func Match(pattern, p string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	p = filepath.ToSlash(p)

	pat := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	for _, seg := range pat {
		if _, err := path.Match(seg, ""); err != nil {
			return false, err
		}
	}
	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")

	if strings.HasPrefix(pattern, "/") {
		return matchSegments(pat, segs), nil
	}
	for i := range segs {
		if matchSegments(pat, segs[i:]) {
			return true, nil
		}
	}
	return false, nil
}

// Filter returns the paths matching pattern, preserving their order.
func Filter(pattern string, paths []string) ([]string, error) {
	out := []string{}
	for _, p := range paths {
		ok, err := Match(pattern, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pat[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, _ := path.Match(pat[0], segs[0])
	return ok && matchSegments(pat[1:], segs[1:])
}
