package taxonomy

// SelectKeywords picks the highest nodes whose whole subtree is blacklisted.
//
// The walk is top-down in insertion order. A fully covered node becomes a
// keyword and its subtree is not visited; otherwise blacklisted leaf children
// are taken one by one and internal children are searched recursively. The
// result is an antichain: no keyword is an ancestor of another.
func SelectKeywords(t *Tree, bl Blacklist) []string {
	return selectWith(t, NewCoverage(t, bl))
}

func selectWith(t *Tree, cov *Coverage) []string {
	var out []string
	selectFrom(t, cov, RootID, &out)
	return out
}

func selectFrom(t *Tree, cov *Coverage, id NodeID, out *[]string) {
	n := t.nodes[id]
	if id != RootID && cov.Covered(id) {
		*out = append(*out, n.Path)
		return
	}

	for _, c := range n.Children {
		if t.IsLeaf(c) {
			if cov.Covered(c) {
				*out = append(*out, t.nodes[c].Path)
			}
			continue
		}
		selectFrom(t, cov, c, out)
	}
}

// CoveredLeaves expands keywords into the leaf paths they match.
// Keywords missing from the tree are skipped.
func CoveredLeaves(t *Tree, keywords []string) PathSet {
	covered := make(PathSet)
	for _, k := range keywords {
		id, ok := t.Lookup(k)
		if !ok {
			continue
		}
		covered.Add(t.Leaves(id)...)
	}
	return covered
}
