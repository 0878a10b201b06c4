package taxonomy

import "sort"

// RootCoverage is the blacklist ratio of one top-level category
type RootCoverage struct {
	Name        string `json:"name"`
	Blacklisted int    `json:"blacklisted"`
	Total       int    `json:"total"`
}

// Percent returns the blacklisted share as a percentage
func (c RootCoverage) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Blacklisted) * 100 / float64(c.Total)
}

// Report is everything derived from one tree and blacklist
type Report struct {
	Keywords  []string       `json:"keywords"`
	Coverage  []RootCoverage `json:"coverage"`
	Unknown   []string       `json:"unknown,omitempty"`
	NonLeaf   []string       `json:"non_leaf,omitempty"`
	Residual  []string       `json:"residual,omitempty"`
	Proposals []string       `json:"proposals,omitempty"`
}

// Analyze runs keyword selection, residual and proposal passes over a tree.
// Blacklist entries missing from the tree index are Unknown; entries naming an
// internal node (even one only implied by a deeper path) are NonLeaf.
func Analyze(t *Tree, bl Blacklist) *Report {
	cov := NewCoverage(t, bl)
	keywords := selectWith(t, cov)
	residual := Residual(t, bl, CoveredLeaves(t, keywords))

	r := &Report{
		Keywords:  keywords,
		Coverage:  RootCoverages(t, bl),
		Residual:  residual,
		Proposals: Proposals(t, residual),
	}

	for _, p := range bl.Sorted() {
		id, ok := t.Lookup(p)
		switch {
		case !ok:
			r.Unknown = append(r.Unknown, p)
		case !t.IsLeaf(id):
			r.NonLeaf = append(r.NonLeaf, p)
		}
	}

	return r
}

// RootCoverages counts blacklisted and total leaves per top-level category, sorted by name
func RootCoverages(t *Tree, bl Blacklist) []RootCoverage {
	var out []RootCoverage
	for _, id := range t.TopLevel() {
		leaves := t.Leaves(id)
		if len(leaves) == 0 {
			continue
		}
		c := RootCoverage{Name: t.nodes[id].Name, Total: len(leaves)}
		for _, l := range leaves {
			if bl.Has(l) {
				c.Blacklisted++
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
