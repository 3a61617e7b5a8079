package ir

// This file implements a tiny, literal concrete model of the
// interfaces in ir.go, together with constructor functions that let
// tests and cmd/irinspect build an ir.Module by hand. It carries no
// analysis logic of its own; it exists only because this module has
// no parser to produce an ir.Module from (see the package doc).

type module struct {
	funcs  []Function
	byName map[string]Function
}

// NewModule builds a Module from a flat list of functions. Function
// names must be unique within the module (spec.md §3) — NewModule
// panics if they are not, since a module containing a name collision
// is malformed input, not a condition any analysis is specified to
// recover from.
func NewModule(funcs ...Function) Module {
	m := &module{
		funcs:  funcs,
		byName: make(map[string]Function, len(funcs)),
	}
	for _, f := range funcs {
		if _, dup := m.byName[f.Name()]; dup {
			panic("ir: duplicate function name " + f.Name())
		}
		m.byName[f.Name()] = f
	}
	return m
}

func (m *module) Functions() []Function { return m.funcs }

func (m *module) FuncByName(name string) (Function, bool) {
	f, ok := m.byName[name]
	return f, ok
}

func (m *module) TypeOf(o Operand) Type { return o.Type() }

type function struct {
	name   string
	ft     FuncType
	blocks []BasicBlock
}

// NewFunction builds a Function named name with the given signature
// and basic blocks. blocks[0] is the entry block, as required by
// spec.md §4.3 ("entry() returns the first block's name").
func NewFunction(name string, ft FuncType, blocks ...BasicBlock) Function {
	return &function{name: name, ft: ft, blocks: blocks}
}

func (f *function) Name() string              { return f.name }
func (f *function) BasicBlocks() []BasicBlock { return f.blocks }
func (f *function) FuncType() FuncType        { return f.ft }

type basicBlock struct {
	name   Name
	instrs []Instruction
	term   Terminator
}

// NewBlock builds a BasicBlock with the given name, instructions, and
// terminator.
func NewBlock(name Name, term Terminator, instrs ...Instruction) BasicBlock {
	return &basicBlock{name: name, instrs: instrs, term: term}
}

func (b *basicBlock) Name() Name                  { return b.name }
func (b *basicBlock) Instructions() []Instruction { return b.instrs }
func (b *basicBlock) Terminator() Terminator      { return b.term }
