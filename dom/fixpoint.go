// Package dom implements §4.4 and §4.5 of the spec: the Cooper,
// Harvey & Kennedy "simple, fast" iterative dominator algorithm, used
// both for the forward DominatorTree (rooted at the CFG's entry block)
// and, over the reversed graph, for the PostDominatorTree (rooted at
// cfg.Return).
//
// Both trees share the exact same fixed-point engine in this file;
// DominatorTree and PostDominatorTree just point it at the forward or
// reversed graph respectively (adapted from original_source's
// DomTreeBuilder, transliterated from petgraph's DiGraphMap to a plain
// Go adjacency function and upgraded from DFS-preorder numbering to
// true reverse postorder per spec.md §4.4 step 1).
package dom

import "github.com/irgraph/analysis/cfg"

type node = cfg.Node

// adjacency is a directed-graph view: succ(n) gives n's out-neighbors
// in whichever direction this tree is being built (forward CFG edges
// for DominatorTree, reversed CFG edges for PostDominatorTree), and
// pred(n) gives the corresponding in-neighbors.
type adjacency struct {
	succ func(node) []node
	pred func(node) []node
}

// tree is the shared result of running the fixed-point algorithm:
// idom[n] is n's immediate dominator (absent for root and for
// unreachable nodes); children[n] is the reverse of idom; rpo[n] is
// n's reverse-postorder number (root = 1); order lists reachable nodes
// in increasing rpo order.
type tree struct {
	root     node
	idom     map[node]node
	hasIdom  map[node]bool
	children map[node][]node
	rpo      map[node]int
	order    []node
}

func build(root node, adj adjacency) *tree {
	order, rpo := reversePostorder(root, adj.succ)

	idom := make(map[node]node)
	hasIdom := make(map[node]bool)

	changed := true
	for changed {
		changed = false
		for _, n := range order {
			if n == root {
				continue
			}
			newIdom, ok := computeIdom(n, root, idom, hasIdom, adj.pred, rpo)
			if !ok {
				continue
			}
			if old := idom[n]; !hasIdom[n] || old != newIdom {
				idom[n] = newIdom
				hasIdom[n] = true
				changed = true
			}
		}
	}

	children := make(map[node][]node)
	for n, has := range hasIdom {
		if has {
			children[idom[n]] = append(children[idom[n]], n)
		}
	}

	return &tree{
		root:     root,
		idom:     idom,
		hasIdom:  hasIdom,
		children: children,
		rpo:      rpo,
		order:    order,
	}
}

// reversePostorder runs a DFS from root following succ, and returns
// the reachable nodes in increasing reverse-postorder order together
// with each node's rpo number (root gets 1, the smallest).
func reversePostorder(root node, succ func(node) []node) ([]node, map[node]int) {
	visited := make(map[node]bool)
	var postorder []node

	var walk func(node)
	walk = func(n node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range succ(n) {
			walk(s)
		}
		postorder = append(postorder, n)
	}
	walk(root)

	order := make([]node, len(postorder))
	for i, n := range postorder {
		order[len(postorder)-1-i] = n
	}

	rpo := make(map[node]int, len(order))
	for i, n := range order {
		rpo[n] = i + 1
	}
	return order, rpo
}

// computeIdom computes n's immediate-dominator estimate from whichever
// of its (direction-appropriate) predecessors currently have an
// estimate of their own. Returns ok=false only if no such predecessor
// exists yet (possible mid-fixed-point on the very first pass; the
// invariant in spec.md §4.4 guarantees every reachable non-root node
// eventually gets one).
func computeIdom(n, root node, idom map[node]node, hasIdom map[node]bool, pred func(node) []node, rpo map[node]int) (node, bool) {
	var result node
	found := false

	for _, p := range pred(n) {
		if _, reachable := rpo[p]; !reachable {
			continue
		}
		if p != root && !hasIdom[p] {
			continue
		}
		if !found {
			result = p
			found = true
			continue
		}
		result = intersect(result, p, root, idom, hasIdom, rpo)
	}

	return result, found
}

// intersect finds the common dominator of a and b by walking the
// higher-rpo-numbered side up through its current idom estimate
// (falling back to root once a node with no further estimate is
// reached) until both sides coincide.
func intersect(a, b, root node, idom map[node]node, hasIdom map[node]bool, rpo map[node]int) node {
	for a != b {
		for rpo[a] > rpo[b] {
			a = idomOrRoot(a, root, idom, hasIdom)
		}
		for rpo[b] > rpo[a] {
			b = idomOrRoot(b, root, idom, hasIdom)
		}
	}
	return a
}

func idomOrRoot(n, root node, idom map[node]node, hasIdom map[node]bool) node {
	if n == root {
		return root
	}
	if hasIdom[n] {
		return idom[n]
	}
	return root
}
