package dom

import "github.com/irgraph/analysis/cfg"

// PostDominatorTree is the dual of DominatorTree, computed over the
// reverse CFG rooted at cfg.Return (spec.md §4.5). A block not
// reachable backward from Return (an infinite loop with no exit) has
// no entry in the tree at all: Ipostdom and Children report it as
// absent, the same way DominatorTree reports unreachable-from-entry
// blocks.
type PostDominatorTree struct {
	t *tree
}

// NewPostDominatorTree builds the post-dominator tree of c: the same
// fixed-point engine as DominatorTree, but walking edges backward and
// rooted at cfg.Return.
func NewPostDominatorTree(c *cfg.CFG) *PostDominatorTree {
	t := build(cfg.Return, adjacency{succ: c.Preds, pred: c.Succs})
	return &PostDominatorTree{t: t}
}

// Ipostdom returns the immediate post-dominator of block, and true —
// or the zero node and false if block is cfg.Return or cannot reach
// Return at all.
func (p *PostDominatorTree) Ipostdom(block cfg.Node) (cfg.Node, bool) {
	if !p.t.hasIdom[block] {
		return cfg.Node{}, false
	}
	return p.t.idom[block], true
}

// Children returns the blocks that block immediately post-dominates.
func (p *PostDominatorTree) Children(block cfg.Node) []cfg.Node {
	return p.t.children[block]
}

// IdomOfReturn returns the unique block that immediately
// post-dominates every path to Return (the function's single latest
// common point across all return paths), and true — or false if no
// block reaches Return at all (e.g. an infinite loop with no exit and
// no other path out).
func (p *PostDominatorTree) IdomOfReturn() (cfg.Node, bool) {
	return p.Ipostdom(cfg.Return)
}

// PostDominates reports whether x post-dominates y: x == y, or x is a
// (possibly indirect) ancestor of y in the post-dominator tree.
func (p *PostDominatorTree) PostDominates(x, y cfg.Node) bool {
	if x == y {
		_, reachable := p.t.rpo[y]
		return reachable
	}
	for cur := y; ; {
		if !p.t.hasIdom[cur] {
			return false
		}
		cur = p.t.idom[cur]
		if cur == x {
			return true
		}
	}
}

// Lca returns the lowest common ancestor of a and b in the
// post-dominator tree. cdg.New does not call it: its walk stops at
// ipdom(a) via PathUpTo instead. Both a and b must be reachable (able
// to reach Return); ok is false if either is not.
func (p *PostDominatorTree) Lca(a, b cfg.Node) (ancestor cfg.Node, ok bool) {
	if _, reachable := p.t.rpo[a]; !reachable {
		return cfg.Node{}, false
	}
	if _, reachable := p.t.rpo[b]; !reachable {
		return cfg.Node{}, false
	}

	ancestorsOfA := map[cfg.Node]bool{a: true}
	for cur := a; p.t.hasIdom[cur]; {
		cur = p.t.idom[cur]
		ancestorsOfA[cur] = true
	}

	cur := b
	if ancestorsOfA[cur] {
		return cur, true
	}
	for p.t.hasIdom[cur] {
		cur = p.t.idom[cur]
		if ancestorsOfA[cur] {
			return cur, true
		}
	}
	return cfg.Node{}, false
}

// PathUpTo walks from `from` up through the post-dominator tree,
// collecting every node starting at `from` itself up to but not
// including `stopAt`. If stopAt is never reached (it is not an
// ancestor of from), the full chain up to the post-dominator tree's
// root (cfg.Return) is returned.
func (p *PostDominatorTree) PathUpTo(from, stopAt cfg.Node) []cfg.Node {
	var out []cfg.Node
	for cur := from; cur != stopAt; {
		out = append(out, cur)
		if !p.t.hasIdom[cur] {
			break
		}
		cur = p.t.idom[cur]
	}
	return out
}
