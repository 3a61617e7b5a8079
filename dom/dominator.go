package dom

import "github.com/irgraph/analysis/cfg"

// DominatorTree is the immediate-dominator relation over a function's
// reachable CFG nodes, rooted at the entry block (spec.md §4.4).
type DominatorTree struct {
	t     *tree
	entry cfg.Node
}

// NewDominatorTree builds the dominator tree of c.
func NewDominatorTree(c *cfg.CFG) *DominatorTree {
	root := cfg.Block(c.Entry())
	t := build(root, adjacency{succ: c.Succs, pred: c.Preds})
	return &DominatorTree{t: t, entry: root}
}

// Idom returns the immediate dominator of block, and true — or the
// zero node and false if block is the entry block or is unreachable
// from entry.
func (d *DominatorTree) Idom(block cfg.Node) (cfg.Node, bool) {
	if !d.t.hasIdom[block] {
		return cfg.Node{}, false
	}
	return d.t.idom[block], true
}

// Children returns the blocks immediately dominated by block.
func (d *DominatorTree) Children(block cfg.Node) []cfg.Node {
	return d.t.children[block]
}

// Entry returns the entry node of the dominator tree.
func (d *DominatorTree) Entry() cfg.Node { return d.entry }

// Dominates reports whether x dominates y: either x == y, or x is a
// (possibly indirect) ancestor of y in the dominator tree. Both must
// be reachable from entry.
func (d *DominatorTree) Dominates(x, y cfg.Node) bool {
	if x == y {
		_, reachable := d.t.rpo[y]
		return reachable
	}
	for cur := y; ; {
		if !d.t.hasIdom[cur] {
			return false
		}
		cur = d.t.idom[cur]
		if cur == x {
			return true
		}
	}
}

// DomPreorder returns every reachable CFG node in dominator-tree
// preorder (parents before children): entry first, then each child
// subtree in turn. Handy for callers that want a traversal order
// consistent with dominance, e.g. printing or worklist algorithms.
func (d *DominatorTree) DomPreorder() []cfg.Node {
	var out []cfg.Node
	var walk func(cfg.Node)
	walk = func(n cfg.Node) {
		out = append(out, n)
		for _, c := range d.t.children[n] {
			walk(c)
		}
	}
	walk(d.entry)
	return out
}
