package taxonomy

import "strings"

// MaxLevels is the deepest category level kept from a path
const MaxLevels = 3

// Separator joins path segments
const Separator = "|"

// NodeID addresses a node inside a Tree
type NodeID int

// RootID is the synthetic root every top-level category hangs from
const RootID NodeID = 0

// NoParent is the parent of the synthetic root
const NoParent NodeID = -1

// Node is one taxonomy segment
type Node struct {
	Name     string
	Path     string
	Parent   NodeID
	Children []NodeID
	Depth    int
}

// Tree is an arena of category nodes plus a full-path index.
// It is never mutated once Build returns.
type Tree struct {
	nodes []Node
	// child lookup per node, keyed by segment name
	byName []map[string]NodeID
	index  map[string]NodeID
}

// Build creates the category tree from canonical paths
func Build(paths []string) *Tree {
	t := &Tree{
		nodes:  []Node{{Name: "ROOT", Parent: NoParent, Depth: -1}},
		byName: []map[string]NodeID{{}},
		index:  make(map[string]NodeID),
	}

	for _, p := range paths {
		parts := Split(p)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > MaxLevels {
			parts = parts[:MaxLevels]
		}

		id := RootID
		full := ""
		for _, part := range parts {
			if full == "" {
				full = part
			} else {
				full = full + Separator + part
			}
			id = t.child(id, part, full)
			t.index[full] = id
		}
	}

	return t
}

func (t *Tree) child(parent NodeID, name, full string) NodeID {
	if id, ok := t.byName[parent][name]; ok {
		return id
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Name:   name,
		Path:   full,
		Parent: parent,
		Depth:  t.nodes[parent].Depth + 1,
	})
	t.byName = append(t.byName, map[string]NodeID{})
	t.byName[parent][name] = id
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Split breaks a path into trimmed, non-empty segments
func Split(path string) []string {
	var parts []string
	for _, s := range strings.Split(path, Separator) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// Len returns the number of real nodes (the synthetic root excluded)
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Node returns the node stored at id
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Lookup resolves a full path to its node
func (t *Tree) Lookup(path string) (NodeID, bool) {
	id, ok := t.index[path]
	return id, ok
}

// IsLeaf reports whether the node has no children
func (t *Tree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].Children) == 0
}

// TopLevel returns the top-level categories in first-appearance order
func (t *Tree) TopLevel() []NodeID {
	return t.nodes[RootID].Children
}

// Leaves returns the leaf paths under id in insertion order.
// A leaf returns itself; the bare synthetic root returns nothing.
func (t *Tree) Leaves(id NodeID) []string {
	var out []string
	t.collectLeaves(id, &out)
	return out
}

func (t *Tree) collectLeaves(id NodeID, out *[]string) {
	n := t.nodes[id]
	if len(n.Children) == 0 {
		if n.Depth >= 0 {
			*out = append(*out, n.Path)
		}
		return
	}
	for _, c := range n.Children {
		t.collectLeaves(c, out)
	}
}

// Walk visits every real node depth-first in insertion order.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(id NodeID, n Node) bool) {
	var visit func(id NodeID)
	visit = func(id NodeID) {
		for _, c := range t.nodes[id].Children {
			if fn(c, t.nodes[c]) {
				visit(c)
			}
		}
	}
	visit(RootID)
}
