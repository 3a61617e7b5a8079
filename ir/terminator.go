package ir

// Terminator is the final operation of a basic block; it determines
// the block's CFG successors. This is a closed sum type: the CFG
// builder switches exhaustively over the concrete variants below and
// treats any other implementation of this interface as a programming
// error (it cannot occur through this package's own constructors).
type Terminator interface {
	isTerminator()
}

// Br is an unconditional branch to Dest.
type Br struct {
	Dest Name
}

func (Br) isTerminator() {}

// CondBr is a two-way conditional branch. The analyzer does not
// inspect Cond (that would require evaluating or tracking values,
// which is data-flow analysis and out of scope) — both destinations
// are always treated as reachable.
type CondBr struct {
	True, False Name
}

func (CondBr) isTerminator() {}

// IndirectBr is a branch through a computed address (the address of a
// label), with a static list of all blocks the compiler proved it
// could possibly target.
type IndirectBr struct {
	PossibleDests []Name
}

func (IndirectBr) isTerminator() {}

// Switch is a multi-way branch: Default plus the destination of each
// case. The case values themselves are irrelevant to control-flow
// structure and are not modeled.
type Switch struct {
	Default Name
	Cases   []Name
}

func (Switch) isTerminator() {}

// Invoke is a call with explicit normal and exceptional successor
// labels. Unlike a CallInstr buried in the instruction stream, an
// Invoke's call-graph edge is discovered from the terminator, and its
// CFG edges go only to Normal and Exception — never to the synthetic
// Return node (§4.3 table: invoke contributes no implicit return
// edge).
type Invoke struct {
	Callee            Operand
	InlineAsm         bool
	Normal, Exception Name
}

func (Invoke) isTerminator() {}

// CleanupRet is an exception-cleanup terminator with an optional
// unwind destination (none iff the cleanup rethrows immediately
// without further IR-visible control flow).
type CleanupRet struct {
	UnwindDest    Name
	HasUnwindDest bool
}

func (CleanupRet) isTerminator() {}

// CatchRet returns from a catch handler to Successor.
type CatchRet struct {
	Successor Name
}

func (CatchRet) isTerminator() {}

// CatchSwitch dispatches to one of several exception handlers, with an
// optional default unwind destination.
type CatchSwitch struct {
	UnwindDest    Name
	HasUnwindDest bool
	Handlers      []Name
}

func (CatchSwitch) isTerminator() {}

// CallBr is the "asm goto" terminator. It is deliberately
// unimplemented (spec.md §1, §4.3, §9): the CFG builder rejects it
// with analysiserr.UnsupportedIRFeature rather than guess at its handler
// list.
type CallBr struct{}

func (CallBr) isTerminator() {}

// Ret is an ordinary function return. Modeled as an edge to the
// synthetic Return node.
type Ret struct{}

func (Ret) isTerminator() {}

// Resume rethrows an in-flight exception. Per spec.md §9 this is
// standardized as an edge to Return, the same as Ret and Unreachable:
// it terminates this function's normal intra-procedural control flow,
// even though no value is actually produced for a caller.
type Resume struct{}

func (Resume) isTerminator() {}

// Unreachable marks a program point the compiler has proven can never
// execute. Per spec.md §9 it is modeled as an edge to Return, the same
// as Ret and Resume.
type Unreachable struct{}

func (Unreachable) isTerminator() {}
