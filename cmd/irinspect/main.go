// Command irinspect is a small demonstration CLI for the analysis
// module: it builds a toy ir.Module in-process (this module has no IR
// parser — see ir/doc.go), runs it through an AnalysisManager, and
// prints the call graph, per-function CFGs, dominator trees, and
// control dependence graphs to the terminal.
//
// Styling is adapted from picatz/taint/cmd/taint's adaptive lipgloss
// palette and NO_COLOR handling; the interactive shell, package
// loading (go/packages, go/ssa), and GitHub cloning (go-git) that
// command built around are all absent here, since this IR has no
// compiler front end or VCS fetch step in scope (see DESIGN.md).
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/irgraph/analysis/analysis"
	"github.com/irgraph/analysis/cdg"
	"github.com/irgraph/analysis/cfg"
	"github.com/irgraph/analysis/ir"
)

var (
	styleHeader  lipgloss.Style
	styleFunc    lipgloss.Style
	styleNumber  lipgloss.Style
	styleSubtle  lipgloss.Style
	styleArrow   lipgloss.Style
	styleSuccess lipgloss.Style
)

func initStyles() {
	if os.Getenv("NO_COLOR") != "" {
		styleHeader = lipgloss.NewStyle().Bold(true)
		reset := lipgloss.NewStyle()
		styleFunc, styleNumber, styleSubtle, styleArrow, styleSuccess = reset, reset, reset, reset, reset
		return
	}

	pastelBlue := lipgloss.AdaptiveColor{Light: "#3366cc", Dark: "#8fb3ff"}
	pastelLav := lipgloss.AdaptiveColor{Light: "#6d5fa6", Dark: "#b7a9ff"}
	pastelGold := lipgloss.AdaptiveColor{Light: "#b58b00", Dark: "#ffd666"}
	pastelGray := lipgloss.AdaptiveColor{Light: "#6b6f76", Dark: "#9aa0aa"}
	pastelGreen := lipgloss.AdaptiveColor{Light: "#2f7d32", Dark: "#9ada9f"}
	pastelEdge := lipgloss.AdaptiveColor{Light: "#7a7f88", Dark: "#aab2bd"}

	styleHeader = lipgloss.NewStyle().Foreground(pastelBlue).Bold(true)
	styleFunc = lipgloss.NewStyle().Foreground(pastelLav)
	styleNumber = lipgloss.NewStyle().Foreground(pastelGold).Bold(true)
	styleSubtle = lipgloss.NewStyle().Foreground(pastelGray)
	styleArrow = lipgloss.NewStyle().Foreground(pastelEdge)
	styleSuccess = lipgloss.NewStyle().Foreground(pastelGreen)
}

func ruleWidth() int {
	width := 72
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return width
}

func printSection(title string) {
	fmt.Println()
	fmt.Println(styleHeader.Render(title))
	fmt.Println(styleSubtle.Render(strings.Repeat("-", min(ruleWidth(), 40))))
}

func main() {
	initStyles()

	mod := demoModule()
	mgr := analysis.NewModuleAnalysis(mod)

	cg, err := mgr.CallGraph()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	printSection("Call graph")
	names := make([]string, 0, len(cg.Nodes))
	for name := range cg.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := cg.Nodes[name]
		fmt.Println(styleFunc.Render(n.Name))
		for _, e := range n.Out {
			fmt.Println("  " + styleArrow.Render("->") + " " + styleFunc.Render(e.Callee.Name))
		}
	}

	for _, name := range names {
		printFunctionAnalyses(mgr, name)
	}
}

func printFunctionAnalyses(mgr *analysis.AnalysisManager, name string) {
	c, err := mgr.ControlFlowGraph(name)
	if err != nil {
		return // e.g. a declared-only function with no body
	}

	printSection("CFG: " + name)
	for _, b := range c.Blocks() {
		fmt.Printf("  %s -> %v\n", styleNumber.Render(b.String()), c.Succs(b))
	}

	dt, err := mgr.DominatorTree(name)
	if err == nil {
		printSection("Dominator tree: " + name)
		for _, b := range dt.DomPreorder() {
			if idom, ok := dt.Idom(b); ok {
				fmt.Printf("  %s idom = %s\n", styleNumber.Render(b.String()), idom.String())
			} else {
				fmt.Printf("  %s (root)\n", styleNumber.Render(b.String()))
			}
		}
	}

	cdgRes, err := mgr.ControlDependenceGraph(name)
	if err == nil {
		printSection("Control dependence: " + name)
		for _, b := range c.Blocks() {
			deps := cdgRes.GetImmControlDependencies(b)
			if len(deps) == 0 {
				continue
			}
			fmt.Printf("  %s depends on %v\n", styleNumber.Render(b.String()), deps)
		}
	}
}

// demoModule builds a small module with a diamond-shaped function
// ("classify") to exercise CFG/dominator/CDG output end to end.
func demoModule() ir.Module {
	boolT := ir.FuncType{Return: ir.VoidType{}}
	entry := ir.NameString("entry")
	thenBlk := ir.NameString("then")
	elseBlk := ir.NameString("else")
	join := ir.NameString("join")

	fn := ir.NewFunction("classify", boolT,
		ir.NewBlock(entry, ir.CondBr{True: thenBlk, False: elseBlk}),
		ir.NewBlock(thenBlk, ir.Br{Dest: join}),
		ir.NewBlock(elseBlk, ir.Br{Dest: join}),
		ir.NewBlock(join, ir.Ret{}),
	)

	main := ir.NewFunction("main", ir.FuncType{Return: ir.VoidType{}},
		ir.NewBlock(ir.NameString("entry"), ir.Ret{},
			ir.CallInstr{Callee: ir.ConstantOperand{
				Constant: ir.GlobalRef{Name: ir.NameString("classify")},
				Typ:      ir.PointerType{Pointee: boolT},
			}},
		),
	)

	return ir.NewModule(fn, main)
}
