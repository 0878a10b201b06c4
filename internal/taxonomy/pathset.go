package taxonomy

import (
	"sort"
	"strings"
)

// PathSet is a set of canonical category paths
type PathSet map[string]struct{}

// NewPathSet builds a set from paths
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set
func (s PathSet) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// Add inserts paths into the set
func (s PathSet) Add(paths ...string) {
	for _, p := range paths {
		s[p] = struct{}{}
	}
}

// Sorted returns the members in lexical order
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Blacklist is the immutable set of leaf paths to exclude.
// Matching is exact: no case folding happens here.
type Blacklist struct {
	set PathSet
}

// NewBlacklist builds a blacklist from raw lines, trimming them and dropping blanks
func NewBlacklist(entries []string) Blacklist {
	set := make(PathSet, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return Blacklist{set: set}
}

// Has reports whether path is blacklisted
func (b Blacklist) Has(path string) bool {
	return b.set.Has(path)
}

// Len returns the number of distinct entries
func (b Blacklist) Len() int {
	return len(b.set)
}

// Sorted returns the entries in lexical order
func (b Blacklist) Sorted() []string {
	return b.set.Sorted()
}
