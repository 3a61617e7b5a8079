package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/irgraph/analysis/callgraph"
)

// WriteCosmograph writes g as the graph/metadata CSV pair Cosmograph
// (https://cosmograph.app/run/) expects: a source/target edge list and
// an id/name node table. Adapted from picatz/taint
// callgraphutil.WriteCosmograph, dropping the per-node package column
// this IR has no equivalent of and the call-site column (this
// callgraph.Edge records no site, only the caller/callee pair —
// spec.md §4.2 defines may-call purely in terms of that pair).
func WriteCosmograph(graph, metadata io.Writer, g *callgraph.Graph) error {
	graphWriter := csv.NewWriter(graph)
	defer graphWriter.Flush()

	metadataWriter := csv.NewWriter(metadata)
	defer metadataWriter.Flush()

	if err := graphWriter.Write([]string{"source", "target"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := metadataWriter.Write([]string{"id", "name"}); err != nil {
		return fmt.Errorf("failed to write metadata header: %w", err)
	}

	for _, n := range g.Nodes {
		if err := metadataWriter.Write([]string{
			fmt.Sprintf("%d", n.ID),
			n.Name,
		}); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}

		for _, e := range n.Out {
			if err := graphWriter.Write([]string{
				fmt.Sprintf("%d", e.Caller.ID),
				fmt.Sprintf("%d", e.Callee.ID),
			}); err != nil {
				return fmt.Errorf("failed to write edge: %w", err)
			}
		}
	}

	return nil
}
