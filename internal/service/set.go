// set.go implements the unordered path and tag sets returned by catalog
// reads and produced by query evaluation.
//
// Design: a map-backed set rather than sorted slices. Query evaluation is a
// chain of intersections and subtractions, each O(n) on a map. Callers that
// print results use Sorted for stable output.

package service

import (
	"encoding/json"
	"slices"
	"strings"
)

// Set is an unordered collection of distinct strings.
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s Set) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// Intersect keeps only members also in o.
func (s Set) Intersect(o Set) {
	for v := range s {
		if !o.Contains(v) {
			delete(s, v)
		}
	}
}

// Subtract removes every member of o.
func (s Set) Subtract(o Set) {
	for v := range o {
		delete(s, v)
	}
}

// Union adds every member of o.
func (s Set) Union(o Set) {
	for v := range o {
		s[v] = struct{}{}
	}
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// String renders the set one member per line in lexical order.
func (s Set) String() string {
	return strings.Join(s.Sorted(), "\n")
}

// MarshalJSON encodes the set as a sorted array so JSON output is stable.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}
