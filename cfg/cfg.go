// Package cfg implements §4.3 of the spec: the intra-procedural
// control flow graph of a single function, over basic blocks plus the
// synthetic Return sink.
package cfg

import (
	"fmt"

	"github.com/irgraph/analysis/analysiserr"
	"github.com/irgraph/analysis/ir"
)

// CFG is the control flow graph of one function.
type CFG struct {
	entry ir.Name
	succs map[Node][]Node
	preds map[Node][]Node
}

// New builds the CFG of fn by walking its basic blocks' terminators,
// following the table in spec.md §4.3.
func New(fn ir.Function) (*CFG, error) {
	blocks := fn.BasicBlocks()
	if len(blocks) == 0 {
		return nil, fmt.Errorf("cfg: function %q has no basic blocks", fn.Name())
	}

	c := &CFG{
		entry: blocks[0].Name(),
		succs: make(map[Node][]Node),
		preds: make(map[Node][]Node),
	}

	for _, bb := range blocks {
		from := Block(bb.Name())
		c.touch(from)

		switch term := bb.Terminator().(type) {
		case ir.Br:
			c.addEdge(from, Block(term.Dest))
		case ir.CondBr:
			c.addEdge(from, Block(term.True))
			c.addEdge(from, Block(term.False))
		case ir.IndirectBr:
			for _, d := range term.PossibleDests {
				c.addEdge(from, Block(d))
			}
		case ir.Switch:
			c.addEdge(from, Block(term.Default))
			for _, d := range term.Cases {
				c.addEdge(from, Block(d))
			}
		case ir.Invoke:
			// Invoke contributes edges only to its normal and
			// exceptional successors, never to Return (spec.md §3, §4.3).
			c.addEdge(from, Block(term.Normal))
			c.addEdge(from, Block(term.Exception))
		case ir.CleanupRet:
			if term.HasUnwindDest {
				c.addEdge(from, Block(term.UnwindDest))
			}
		case ir.CatchRet:
			c.addEdge(from, Block(term.Successor))
		case ir.CatchSwitch:
			if term.HasUnwindDest {
				c.addEdge(from, Block(term.UnwindDest))
			}
			for _, h := range term.Handlers {
				c.addEdge(from, Block(h))
			}
		case ir.CallBr:
			return nil, analysiserr.NewUnsupportedIRFeature(
				"callbr terminator",
				fmt.Sprintf("function %q, block %q", fn.Name(), bb.Name()),
			)
		case ir.Ret, ir.Resume, ir.Unreachable:
			// Each of these terminates normal intra-procedural control
			// flow; all three are modeled uniformly as an edge to the
			// synthetic Return node (spec.md §3, §9).
			c.addEdge(from, Return)
		default:
			return nil, analysiserr.NewUnsupportedIRFeature(
				"unrecognized terminator",
				fmt.Sprintf("function %q, block %q", fn.Name(), bb.Name()),
			)
		}
	}

	return c, nil
}

// touch ensures n has (possibly empty) entries in both adjacency maps,
// so that Succs/Preds never distinguish "no edges" from "never seen".
func (c *CFG) touch(n Node) {
	if _, ok := c.succs[n]; !ok {
		c.succs[n] = nil
	}
	if _, ok := c.preds[n]; !ok {
		c.preds[n] = nil
	}
}

// addEdge adds from -> to, idempotently (duplicate edges, e.g. a
// switch whose default and some case share a destination, collapse to
// one).
func (c *CFG) addEdge(from, to Node) {
	c.touch(from)
	c.touch(to)
	for _, s := range c.succs[from] {
		if s == to {
			return
		}
	}
	c.succs[from] = append(c.succs[from], to)
	c.preds[to] = append(c.preds[to], from)
}

// Entry returns the name of the function's entry block.
func (c *CFG) Entry() ir.Name { return c.entry }

// Succs returns the successors of n. Return always has none.
func (c *CFG) Succs(n Node) []Node { return c.succs[n] }

// Preds returns the predecessors of n.
func (c *CFG) Preds(n Node) []Node { return c.preds[n] }

// SuccsOfReturn is always empty: Return has no outgoing edges
// (spec.md §3).
func (c *CFG) SuccsOfReturn() []Node { return nil }

// PredsOfReturn enumerates the blocks that return (directly or via a
// standardized Unreachable/Resume), i.e. Return's predecessors.
func (c *CFG) PredsOfReturn() []Node { return c.preds[Return] }

// Blocks returns every node that appears in the CFG, including Return
// once some block edges to it, in an unspecified order that may differ
// between calls. Used by the control dependence builder as the set of
// edge sources, and handy for tests that want to assert on the whole
// graph rather than one node at a time.
func (c *CFG) Blocks() []Node {
	out := make([]Node, 0, len(c.succs))
	for n := range c.succs {
		out = append(out, n)
	}
	return out
}
