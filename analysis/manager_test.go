package analysis_test

import (
	"errors"
	"testing"

	"github.com/irgraph/analysis"
	"github.com/irgraph/analysis/analysiserr"
	"github.com/irgraph/analysis/ir"
)

var voidFn = ir.FuncType{Return: ir.VoidType{}}

func directCall(calleeName string) ir.CallInstr {
	return ir.CallInstr{
		Callee: ir.ConstantOperand{
			Constant: ir.GlobalRef{Name: ir.NameString(calleeName)},
			Typ:      ir.PointerType{Pointee: voidFn},
		},
	}
}

func diamondModule() ir.Module {
	return ir.NewModule(
		ir.NewFunction("classify", voidFn,
			ir.NewBlock(ir.NameString("entry"), ir.CondBr{True: ir.NameString("then"), False: ir.NameString("else")}),
			ir.NewBlock(ir.NameString("then"), ir.Br{Dest: ir.NameString("join")}),
			ir.NewBlock(ir.NameString("else"), ir.Br{Dest: ir.NameString("join")}),
			ir.NewBlock(ir.NameString("join"), ir.Ret{}),
		),
		ir.NewFunction("main", voidFn, ir.NewBlock(ir.NameString("entry"), ir.Ret{}, directCall("classify"))),
	)
}

func TestControlFlowGraphUnknownFunction(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	if _, err := m.ControlFlowGraph("nonexistent"); !errors.Is(err, analysiserr.ErrUnknownFunction) {
		t.Fatalf("ControlFlowGraph(nonexistent) error = %v, want ErrUnknownFunction", err)
	}
}

func TestControlFlowGraphCachesByPointer(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	c1, err := m.ControlFlowGraph("classify")
	if err != nil {
		t.Fatalf("ControlFlowGraph: %v", err)
	}
	c2, err := m.ControlFlowGraph("classify")
	if err != nil {
		t.Fatalf("ControlFlowGraph: %v", err)
	}
	if c1 != c2 {
		t.Fatalf("ControlFlowGraph returned different pointers on repeated calls")
	}
}

func TestCallGraphCachesByPointer(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	g1, err := m.CallGraph()
	if err != nil {
		t.Fatalf("CallGraph: %v", err)
	}
	g2, err := m.CallGraph()
	if err != nil {
		t.Fatalf("CallGraph: %v", err)
	}
	if g1 != g2 {
		t.Fatalf("CallGraph returned different pointers on repeated calls")
	}
}

func TestFunctionsByTypeCachesByPointer(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	idx1 := m.FunctionsByType()
	idx2 := m.FunctionsByType()
	if idx1 != idx2 {
		t.Fatalf("FunctionsByType returned different pointers on repeated calls")
	}
}

func TestDominatorTreeBuildsCFGAsSideEffect(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	if _, err := m.DominatorTree("classify"); err != nil {
		t.Fatalf("DominatorTree: %v", err)
	}
	stats := m.Stats()
	if stats.CFGsBuilt != 1 {
		t.Fatalf("Stats().CFGsBuilt = %d, want 1 (DominatorTree should have built the CFG)", stats.CFGsBuilt)
	}
	if stats.DominatorTreesBuilt != 1 {
		t.Fatalf("Stats().DominatorTreesBuilt = %d, want 1", stats.DominatorTreesBuilt)
	}
}

func TestControlDependenceGraphBuildsCFGAndPostDomAsSideEffects(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	if _, err := m.ControlDependenceGraph("classify"); err != nil {
		t.Fatalf("ControlDependenceGraph: %v", err)
	}
	stats := m.Stats()
	if stats.CFGsBuilt != 1 {
		t.Fatalf("Stats().CFGsBuilt = %d, want 1", stats.CFGsBuilt)
	}
	if stats.PostDomTreesBuilt != 1 {
		t.Fatalf("Stats().PostDomTreesBuilt = %d, want 1", stats.PostDomTreesBuilt)
	}
	if stats.ControlDepGraphsBuilt != 1 {
		t.Fatalf("Stats().ControlDepGraphsBuilt = %d, want 1", stats.ControlDepGraphsBuilt)
	}
}

func TestStatsStartsEmpty(t *testing.T) {
	m := analysis.NewModuleAnalysis(diamondModule())
	stats := m.Stats()
	if stats.CallGraphBuilt || stats.TypeIndexBuilt || stats.CFGsBuilt != 0 ||
		stats.DominatorTreesBuilt != 0 || stats.PostDomTreesBuilt != 0 || stats.ControlDepGraphsBuilt != 0 {
		t.Fatalf("Stats() on a fresh manager = %+v, want all zero", stats)
	}
}

func TestCrossModuleCallGraphResolvesAcrossModules(t *testing.T) {
	modA := ir.NewModule(ir.NewFunction("caller", voidFn, ir.NewBlock(ir.NameString("entry"), ir.Ret{}, directCall("callee"))))
	modB := ir.NewModule(ir.NewFunction("callee", voidFn, ir.NewBlock(ir.NameString("entry"), ir.Ret{})))

	m := analysis.NewCrossModuleAnalysis([]ir.Module{modA, modB})
	g, err := m.CallGraph()
	if err != nil {
		t.Fatalf("CallGraph: %v", err)
	}
	if _, ok := g.Nodes["callee"]; !ok {
		t.Fatalf("cross-module call graph missing callee defined in the second module")
	}

	if _, err := m.ControlFlowGraph("callee"); err != nil {
		t.Fatalf("ControlFlowGraph(callee) across modules: %v", err)
	}
}

func TestCrossModuleFirstDefinitionWins(t *testing.T) {
	dupA := ir.NewModule(ir.NewFunction("dup", voidFn, ir.NewBlock(ir.NameString("a"), ir.Ret{})))
	dupB := ir.NewModule(ir.NewFunction("dup", voidFn, ir.NewBlock(ir.NameString("b"), ir.Ret{})))

	m := analysis.NewCrossModuleAnalysis([]ir.Module{dupA, dupB})
	c, err := m.ControlFlowGraph("dup")
	if err != nil {
		t.Fatalf("ControlFlowGraph: %v", err)
	}
	found := false
	for _, b := range c.Blocks() {
		if b.String() == "a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ControlFlowGraph(dup) did not resolve to the first module's definition")
	}
}
