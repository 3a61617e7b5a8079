package cfg

import "github.com/irgraph/analysis/ir"

// Node is a CFG node: either a real basic block, or the synthetic
// Return sink representing every normal function exit (spec.md §3).
// It is a small value type so it can be used directly as a map key;
// equality and hashing treat Return as distinct from every Block,
// regardless of what Name happens to be its zero value.
type Node struct {
	block    ir.Name
	isReturn bool
}

// Block returns the CFG node for the basic block named name.
func Block(name ir.Name) Node { return Node{block: name} }

// Return is the synthetic sink node.
var Return = Node{isReturn: true}

// IsReturn reports whether n is the synthetic Return node.
func (n Node) IsReturn() bool { return n.isReturn }

// BlockName returns the underlying basic block name and true, or the
// zero Name and false if n is Return.
func (n Node) BlockName() (ir.Name, bool) {
	if n.isReturn {
		return ir.Name{}, false
	}
	return n.block, true
}

// String renders the node for debugging: the block name, or "return".
func (n Node) String() string {
	if n.isReturn {
		return "return"
	}
	return n.block.String()
}
