package callgraph

import "strings"

// Path is a sequence of call graph edges forming a chain of calls,
// e.g. main -> foo -> bar -> baz. Not part of spec.md's core contract
// (the original crate this spec was distilled from only exposes
// callers/callees) — supplemented here, adapted from the teacher's
// callgraphutil.Path, because path search over a call graph is an
// obvious and low-risk convenience once Callers/Callees exist.
type Path []*Edge

// Empty reports whether the path has no edges.
func (p Path) Empty() bool { return len(p) == 0 }

// String renders the path as "caller -> ... -> callee".
func (p Path) String() string {
	if p.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(p[0].Caller.Name)
	for _, e := range p {
		b.WriteString(" -> ")
		b.WriteString(e.Callee.Name)
	}
	return b.String()
}

// PathSearch performs a depth-first search from start, returning the
// first path found to a node for which isEnd returns true, or nil if
// no such node is reachable.
func PathSearch(start *Node, isEnd func(*Node) bool) Path {
	var stack Path
	seen := make(map[*Node]bool)

	var search func(n *Node) Path
	search = func(n *Node) Path {
		if seen[n] {
			return nil
		}
		seen[n] = true
		if isEnd(n) {
			found := make(Path, len(stack))
			copy(found, stack)
			return found
		}
		for _, e := range n.Out {
			stack = append(stack, e)
			if found := search(e.Callee); found != nil {
				return found
			}
			stack = stack[:len(stack)-1]
		}
		return nil
	}
	return search(start)
}

// PathsSearch performs a depth-first search from start, returning one
// path for every distinct node reachable for which isEnd returns true.
func PathsSearch(start *Node, isEnd func(*Node) bool) []Path {
	var paths []Path
	var stack Path
	seen := make(map[*Node]bool)

	var search func(n *Node)
	search = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if isEnd(n) {
			found := make(Path, len(stack))
			copy(found, stack)
			paths = append(paths, found)
		}
		for _, e := range n.Out {
			stack = append(stack, e)
			search(e.Callee)
			stack = stack[:len(stack)-1]
		}
	}
	search(start)
	return paths
}
