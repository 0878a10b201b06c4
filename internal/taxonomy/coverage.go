package taxonomy

// IsFullyCovered reports whether every leaf under id is blacklisted.
// It walks the whole subtree on every call; use Coverage when asking about many nodes.
func IsFullyCovered(t *Tree, bl Blacklist, id NodeID) bool {
	n := t.nodes[id]
	if len(n.Children) == 0 {
		return n.Depth >= 0 && bl.Has(n.Path)
	}
	for _, c := range n.Children {
		if !IsFullyCovered(t, bl, c) {
			return false
		}
	}
	return true
}

// Coverage holds the full-coverage predicate for every node of a tree,
// computed in one post-order pass.
type Coverage struct {
	covered []bool
}

// NewCoverage evaluates coverage for the whole tree
func NewCoverage(t *Tree, bl Blacklist) *Coverage {
	c := &Coverage{covered: make([]bool, len(t.nodes))}
	c.fill(t, bl, RootID)
	return c
}

func (c *Coverage) fill(t *Tree, bl Blacklist, id NodeID) bool {
	n := t.nodes[id]
	if len(n.Children) == 0 {
		c.covered[id] = n.Depth >= 0 && bl.Has(n.Path)
		return c.covered[id]
	}

	all := true
	// no short-circuit: every descendant needs its own entry
	for _, child := range n.Children {
		if !c.fill(t, bl, child) {
			all = false
		}
	}
	c.covered[id] = all
	return all
}

// Covered reports whether every leaf under id is blacklisted
func (c *Coverage) Covered(id NodeID) bool {
	return c.covered[id]
}
