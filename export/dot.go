// Package export writes a callgraph.Graph to formats consumable by
// external graph-visualization tools: Graphviz DOT, a flat CSV edge
// list, and the source/target/metadata CSV pair Cosmograph expects.
// Adapted from picatz/taint's callgraphutil DOT/CSV/Cosmograph
// writers, retargeted at this module's own callgraph.Graph (which
// carries no package information, so the per-package subgraph
// clustering the teacher did is dropped — every node gets one flat
// graph).
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/irgraph/analysis/callgraph"
)

// WriteDOT writes g in the DOT format, suitable for Graphviz.
func WriteDOT(w io.Writer, g *callgraph.Graph) error {
	b := bufio.NewWriter(w)

	b.WriteString("digraph callgraph {\n")
	b.WriteString("\tgraph [fontname=\"Helvetica\", overlap=false normalize=true];\n")
	b.WriteString("\tnode [fontname=\"Helvetica\" shape=box];\n")
	b.WriteString("\tedge [fontname=\"Helvetica\"];\n")

	var edges []*callgraph.Edge
	for _, n := range g.Nodes {
		fmt.Fprintf(b, "\t%d [label=%q];\n", n.ID, n.Name)
		edges = append(edges, n.Out...)
	}

	for _, e := range edges {
		fmt.Fprintf(b, "\t%d -> %d;\n", e.Caller.ID, e.Callee.ID)
	}

	b.WriteString("}\n")

	return b.Flush()
}
