// Package cdg implements §4.6 of the spec: the control dependence
// graph, derived from a function's CFG and PostDominatorTree via the
// standard Ferrante-Ottenstein-Warren construction. No implementation
// of this algorithm appears anywhere in the retrieved corpus (it is
// absent from both the teacher and golang.org/x/tools, which compute
// dominance but not control dependence); this package follows the
// textbook formulation spec.md §4.6 states directly.
package cdg

import (
	"github.com/irgraph/analysis/cfg"
	"github.com/irgraph/analysis/dom"
)

// CDG is the control dependence graph of one function: for each block,
// the set of blocks it is immediately control-dependent on.
type CDG struct {
	deps map[cfg.Node][]cfg.Node
}

// New builds the control dependence graph from c and its
// PostDominatorTree pd (which callers are expected to have already
// built from the same c, e.g. via an AnalysisManager).
func New(c *cfg.CFG, pd *dom.PostDominatorTree) *CDG {
	seen := make(map[cfg.Node]map[cfg.Node]bool)
	addDep := func(dependent, on cfg.Node) {
		set, ok := seen[dependent]
		if !ok {
			set = make(map[cfg.Node]bool)
			seen[dependent] = set
		}
		set[on] = true
	}

	for _, a := range c.Blocks() {
		ipdomA, ok := pd.Ipostdom(a)
		if !ok {
			// a cannot reach Return at all — no meaningful
			// post-dominator-tree ancestry to walk from any of its
			// successors.
			continue
		}
		for _, b := range c.Succs(a) {
			// Walk from b up to (but not including) ipdom(a). This
			// coincides with lca(a,b) for an ordinary successor b,
			// since every path out of b must reach ipdom(a) too — but
			// unlike lca(a,b), it stays correct when b is a itself (a
			// loop header's back edge) or some other ancestor of a,
			// where lca(a,b) collapses to b and erases the walk.
			// Anchoring on ipdom(a) keeps a in the walk in that case,
			// producing the self-dependence spec.md §4.6 step 3
			// requires for loop headers.
			for _, v := range pd.PathUpTo(b, ipdomA) {
				addDep(v, a)
			}
		}
	}

	deps := make(map[cfg.Node][]cfg.Node, len(seen))
	for v, set := range seen {
		list := make([]cfg.Node, 0, len(set))
		for a := range set {
			list = append(list, a)
		}
		deps[v] = list
	}
	return &CDG{deps: deps}
}

// GetImmControlDependencies returns the blocks that block is
// immediately control-dependent on. Blocks with no dependencies (e.g.
// entry, or any block that post-dominates all of its peers) yield an
// empty slice.
func (g *CDG) GetImmControlDependencies(block cfg.Node) []cfg.Node {
	return g.deps[block]
}
