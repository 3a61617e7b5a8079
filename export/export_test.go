package export_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/irgraph/analysis/callgraph"
	"github.com/irgraph/analysis/export"
	"github.com/irgraph/analysis/ir"
	"github.com/irgraph/analysis/typeindex"
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

func buildGraph(t *testing.T) *callgraph.Graph {
	t.Helper()
	mod := ir.NewModule(
		ir.NewFunction("caller", voidFn, ir.NewBlock(ir.NameString("entry"), ir.Ret{}, directCall("callee"))),
		ir.NewFunction("callee", voidFn, ir.NewBlock(ir.NameString("entry"), ir.Ret{})),
	)
	idx := typeindex.New(mod)
	g, err := callgraph.New([]ir.Module{mod}, idx)
	if err != nil {
		t.Fatalf("callgraph.New: %v", err)
	}
	return g
}

func TestWriteDOT(t *testing.T) {
	g := buildGraph(t)
	var buf bytes.Buffer
	if err := export.WriteDOT(&buf, g); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph callgraph {\n") {
		t.Fatalf("WriteDOT output does not start with digraph header: %q", out)
	}
	if !strings.Contains(out, `label="caller"`) || !strings.Contains(out, `label="callee"`) {
		t.Fatalf("WriteDOT output missing node labels: %q", out)
	}
	caller := g.Nodes["caller"]
	callee := g.Nodes["callee"]
	wantEdge := fmt.Sprintf("\t%d -> %d;\n", caller.ID, callee.ID)
	if !strings.Contains(out, wantEdge) {
		t.Fatalf("WriteDOT output missing edge %q: %q", wantEdge, out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Fatalf("WriteDOT output does not end with closing brace: %q", out)
	}
}

func TestWriteCSV(t *testing.T) {
	g := buildGraph(t)
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, g); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "caller,callee" {
		t.Fatalf("WriteCSV header = %q, want \"caller,callee\"", lines[0])
	}
	if len(lines) != 2 || lines[1] != "caller,callee" {
		t.Fatalf("WriteCSV rows = %v, want exactly one edge row \"caller,callee\"", lines[1:])
	}
}

func TestWriteCosmograph(t *testing.T) {
	g := buildGraph(t)
	var graphBuf, metaBuf bytes.Buffer
	if err := export.WriteCosmograph(&graphBuf, &metaBuf, g); err != nil {
		t.Fatalf("WriteCosmograph: %v", err)
	}

	graphLines := strings.Split(strings.TrimRight(graphBuf.String(), "\n"), "\n")
	if graphLines[0] != "source,target" {
		t.Fatalf("graph CSV header = %q, want \"source,target\"", graphLines[0])
	}
	if len(graphLines) != 2 {
		t.Fatalf("graph CSV rows = %v, want exactly one edge row", graphLines[1:])
	}

	metaLines := strings.Split(strings.TrimRight(metaBuf.String(), "\n"), "\n")
	if metaLines[0] != "id,name" {
		t.Fatalf("metadata CSV header = %q, want \"id,name\"", metaLines[0])
	}
	if len(metaLines) != 3 {
		t.Fatalf("metadata CSV rows = %v, want one row per node (2)", metaLines[1:])
	}
}
