package taxonomy

import "strings"

// proposalLevels are the ancestor depths (in segments) tried for proposals
var proposalLevels = []int{1, 2}

// Residual lists blacklisted leaves of the tree that covered does not contain, sorted.
// Entries outside the tree or naming internal nodes are not residual.
func Residual(t *Tree, bl Blacklist, covered PathSet) []string {
	var out []string
	for _, p := range bl.Sorted() {
		id, ok := t.Lookup(p)
		if !ok || !t.IsLeaf(id) {
			continue
		}
		if !covered.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Proposals returns level-1 and level-2 ancestors whose leaves all sit in residual, sorted.
// Only proper ancestors are tried: a one- or two-level residual entry is never
// proposed as itself. They are candidates for manual review and are never
// applied automatically.
func Proposals(t *Tree, residual []string) []string {
	if len(residual) == 0 {
		return nil
	}

	residualSet := NewPathSet(residual...)
	proposals := make(PathSet)
	for _, r := range residual {
		parts := Split(r)
		for _, lvl := range proposalLevels {
			if len(parts) <= lvl {
				continue
			}
			ancestor := strings.Join(parts[:lvl], Separator)
			if proposals.Has(ancestor) {
				continue
			}
			id, ok := t.Lookup(ancestor)
			if !ok {
				continue
			}
			if subsetOf(t.Leaves(id), residualSet) {
				proposals.Add(ancestor)
			}
		}
	}
	if len(proposals) == 0 {
		return nil
	}
	return proposals.Sorted()
}

func subsetOf(leaves []string, set PathSet) bool {
	if len(leaves) == 0 {
		return false
	}
	for _, l := range leaves {
		if !set.Has(l) {
			return false
		}
	}
	return true
}
