package match

import "github.com/irgraph/analysis/callgraph"

// PathsTo returns every call path from start to a node whose name
// matches the given pattern, using Parse to pick the strategy from
// the pattern's optional prefix. Adapted from picatz/taint
// callgraphutil.PathsSearchCallToAdvanced, retargeted at this module's
// callgraph.Path/PathsSearch.
func PathsTo(start *callgraph.Node, pattern string) ([]callgraph.Path, Strategy, error) {
	m, err := Parse(pattern)
	if err != nil {
		return nil, Exact, err
	}
	paths := callgraph.PathsSearch(start, func(n *callgraph.Node) bool {
		return n != nil && m.Match(n.Name)
	})
	return paths, m.strategy, nil
}
