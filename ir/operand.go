package ir

// Operand is either a constant or a reference to an SSA value defined
// elsewhere in the function (an instruction result or a parameter).
// The analyzer only ever needs to ask "is this a constant, and if so,
// which kind" — it never evaluates or tracks the value itself (that
// would be data-flow analysis, out of scope).
type Operand interface {
	// Type is the static type of this operand, used by the call graph
	// builder to find the pointee function type of an indirect call
	// target.
	Type() Type
	isOperand()
}

// ConstantOperand wraps a Constant as an Operand.
type ConstantOperand struct {
	Constant Constant
	Typ      Type
}

func (ConstantOperand) isOperand() {}

func (o ConstantOperand) Type() Type { return o.Typ }

// ValueOperand is a non-constant operand: a reference to some SSA
// value computed at runtime (an instruction result, a parameter, a
// function pointer loaded from memory, etc). The analyzer cannot look
// through it without alias analysis, which is out of scope; it only
// needs its static type.
type ValueOperand struct {
	Typ Type
}

func (ValueOperand) isOperand() {}

func (o ValueOperand) Type() Type { return o.Typ }

// Constant is a compile-time-known value. Only GlobalRef (a reference
// to a named or numbered global, e.g. the address of a function) is
// ever inspected directly by the analyzer; every other constant
// expression (bitcasts, GEPs, etc.) is treated uniformly as "some
// other constant computation" per the call graph's conservative
// resolution policy.
type Constant interface {
	isConstant()
}

// GlobalRef names a global (most relevantly, a function).
type GlobalRef struct {
	Name Name
}

func (GlobalRef) isConstant() {}

// OtherConstant stands in for any constant expression that is not a
// direct global reference: a bitcast-of-function constant, a GEP, a
// constant computed from other constants, etc. The call graph builder
// treats any OtherConstant callee the same way it treats a
// non-constant callee: resolve its pointee function type and add
// edges to every function in the type index with that type.
type OtherConstant struct{}

func (OtherConstant) isConstant() {}
