package ir

import "strconv"

// Name identifies a basic block (or, in principle, any other local
// value) within a single function. It mirrors llvm_ir::Name's two
// variants: a textual name, or a numeric slot assigned by the IR when
// no name was given.
//
// Name has value semantics and a comparable underlying representation,
// so it can be used directly as a map key.
type Name struct {
	s     string
	n     uint64
	isNum bool
}

// NameString returns a named Name, e.g. the block called "entry".
func NameString(s string) Name {
	return Name{s: s}
}

// NameSlot returns a numeric Name, e.g. the 3rd unnamed block in a
// function. Call sites and globals with a NameSlot name are rejected
// by the call graph builder (see analysiserr.UnsupportedIRFeature); plain
// basic blocks with a NameSlot name are fully supported.
func NameSlot(n uint64) Name {
	return Name{n: n, isNum: true}
}

// IsSlot reports whether this is a numeric (unnamed) name.
func (n Name) IsSlot() bool { return n.isNum }

// String renders the name the way LLVM IR disassembly would: a bare
// string for named values, '%' + the slot number for numeric ones.
func (n Name) String() string {
	if n.isNum {
		return "%" + strconv.FormatUint(n.n, 10)
	}
	return n.s
}
