// Package callgraph implements §4.2 of the spec: a conservative,
// sound over-approximation of "may call" between functions, built
// from one or more ir.Modules and a typeindex.Index for resolving
// indirect call targets.
//
// The Graph/Node/Edge shape, CreateNode, and AddEdge's dedup-by-target
// pattern are adapted from the teacher's callgraph.Graph — generalized
// here from *ssa.Function nodes to function-name nodes, since this
// module's IR has no single compiled Program to key nodes by pointer
// identity against.
package callgraph

import (
	"fmt"
	"sync"

	"github.com/irgraph/analysis/analysiserr"
	"github.com/irgraph/analysis/ir"
	"github.com/irgraph/analysis/typeindex"
)

// Node is a single function in the call graph.
type Node struct {
	mu   sync.RWMutex
	Name string
	ID   int
	In   []*Edge // unordered set of incoming call edges
	Out  []*Edge // unordered set of outgoing call edges
}

func (n *Node) String() string { return n.Name }

// Edge is a directed "may call" relation from Caller to Callee.
// Multiplicity is irrelevant (spec.md §3): AddEdge is idempotent, so a
// function calling another ten different ways still produces one
// Edge.
type Edge struct {
	Caller *Node
	Callee *Node
}

func (e *Edge) String() string { return fmt.Sprintf("%s -> %s", e.Caller, e.Callee) }

// Graph is the call graph over a fixed set of analyzed modules.
type Graph struct {
	mu    sync.Mutex
	Nodes map[string]*Node
}

// New builds the call graph of the given modules, resolving indirect
// calls against idx. idx must have been built over the same module
// set (use typeindex.New for a single module, typeindex.NewCrossModule
// for several) so that indirect-call resolution sees every candidate
// target.
func New(modules []ir.Module, idx *typeindex.Index) (*Graph, error) {
	g := &Graph{Nodes: make(map[string]*Node)}

	for _, mod := range modules {
		for _, fn := range mod.Functions() {
			fnode := g.createNode(fn.Name()) // ensure every function is a node, even with no edges

			for _, bb := range fn.BasicBlocks() {
				for _, instr := range bb.Instructions() {
					call, ok := instr.(ir.CallInstr)
					if !ok {
						continue
					}
					if call.InlineAsm {
						continue
					}
					if err := g.addCallEdges(mod, fnode, call.Callee, idx); err != nil {
						return nil, err
					}
				}

				if inv, ok := bb.Terminator().(ir.Invoke); ok && !inv.InlineAsm {
					if err := g.addCallEdges(mod, fnode, inv.Callee, idx); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return g, nil
}

// addCallEdges resolves a single call/invoke's callee operand and adds
// the appropriate edge(s) from caller, per the resolution policy in
// spec.md §4.2.
func (g *Graph) addCallEdges(mod ir.Module, caller *Node, callee ir.Operand, idx *typeindex.Index) error {
	if constOp, ok := callee.(ir.ConstantOperand); ok {
		if ref, ok := constOp.Constant.(ir.GlobalRef); ok {
			if ref.Name.IsSlot() {
				return analysiserr.NewUnsupportedIRFeature(
					"numeric-named call target",
					fmt.Sprintf("call in %s to global %s", caller.Name, ref.Name),
				)
			}
			g.addEdge(caller, g.createNode(ref.Name.String()))
			return nil
		}
		// A constant computation other than a direct global reference
		// (e.g. a bitcast-of-function constant). Fall through to the
		// pointee-function-type resolution below.
	}

	funcType, err := pointeeFuncType(mod.TypeOf(callee))
	if err != nil {
		return fmt.Errorf("resolving indirect call target in %s: %w", caller.Name, err)
	}
	for _, target := range idx.FunctionsWithType(funcType) {
		g.addEdge(caller, g.createNode(target))
	}
	return nil
}

func pointeeFuncType(t ir.Type) (ir.FuncType, error) {
	ptr, ok := t.(ir.PointerType)
	if !ok {
		return ir.FuncType{}, analysiserr.NewUnsupportedIRFeature(
			"non-function-pointer callee type",
			fmt.Sprintf("expected a pointer-to-function callee type, got %s", t.Key()),
		)
	}
	ft, ok := ptr.Pointee.(ir.FuncType)
	if !ok {
		return ir.FuncType{}, analysiserr.NewUnsupportedIRFeature(
			"non-function-pointer callee type",
			fmt.Sprintf("expected pointee to be a function type, got %s", ptr.Pointee.Key()),
		)
	}
	return ft, nil
}

// createNode returns the Node for name, creating it if absent.
func (g *Graph) createNode(name string) *Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.Nodes[name]; ok {
		return n
	}
	n := &Node{Name: name, ID: len(g.Nodes)}
	g.Nodes[name] = n
	return n
}

// addEdge adds the edge (caller -> callee), idempotently.
func (g *Graph) addEdge(caller, callee *Node) {
	e := &Edge{Caller: caller, Callee: callee}

	caller.mu.Lock()
	exists := false
	for _, out := range caller.Out {
		if out.Callee == callee {
			exists = true
			break
		}
	}
	if !exists {
		caller.Out = append(caller.Out, e)
	}
	caller.mu.Unlock()

	if exists {
		return
	}

	callee.mu.Lock()
	callee.In = append(callee.In, e)
	callee.mu.Unlock()
}

// Callers returns the names of functions which may call name.
func (g *Graph) Callers(name string) ([]string, error) {
	n, ok := g.Nodes[name]
	if !ok {
		return nil, analysiserr.NewUnknownFunction(name)
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.In))
	for i, e := range n.In {
		out[i] = e.Caller.Name
	}
	return out, nil
}

// Callees returns the names of functions which name may call.
func (g *Graph) Callees(name string) ([]string, error) {
	n, ok := g.Nodes[name]
	if !ok {
		return nil, analysiserr.NewUnknownFunction(name)
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.Out))
	for i, e := range n.Out {
		out[i] = e.Callee.Name
	}
	return out, nil
}
