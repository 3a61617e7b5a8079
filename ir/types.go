package ir

import "strings"

// Type is the structural type of an IR value. Only the two variants
// the analyzer actually inspects — function types (for the functions-
// by-type index) and pointer types (to find the pointee function type
// of an indirect call target) — are modeled; every other LLVM type
// (integers, vectors, structs, ...) is represented as OpaqueType and is
// otherwise inert as far as this module is concerned.
//
// Equality and hashing on Type must be structural, not identity — two
// separately-built FuncType values describing "i32 (i32, i32)" are the
// same type. Key() is the canonical string used to bucket types in
// typeindex.Index; Equal() is provided for callers who want a
// structural comparison without going through a map.
type Type interface {
	Key() string
	Equal(Type) bool
	isType()
}

// FuncType describes a function's signature: its return type,
// parameter types in order, and whether it is variadic.
type FuncType struct {
	Return   Type
	Params   []Type
	Variadic bool
}

func (FuncType) isType() {}

func (t FuncType) Key() string {
	var b strings.Builder
	b.WriteString(t.Return.Key())
	b.WriteByte('(')
	for i, p := range t.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Key())
	}
	if t.Variadic {
		if len(t.Params) > 0 {
			b.WriteByte(',')
		}
		b.WriteString("...")
	}
	b.WriteByte(')')
	return b.String()
}

func (t FuncType) Equal(other Type) bool {
	o, ok := other.(FuncType)
	if !ok || t.Variadic != o.Variadic || len(t.Params) != len(o.Params) {
		return false
	}
	if !t.Return.Equal(o.Return) {
		return false
	}
	for i, p := range t.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// PointerType is a pointer to some pointee type. Indirect call targets
// are resolved by requiring the callee operand's type to be a
// PointerType whose Pointee is a FuncType.
type PointerType struct {
	Pointee Type
}

func (PointerType) isType() {}

func (t PointerType) Key() string { return "*" + t.Pointee.Key() }

func (t PointerType) Equal(other Type) bool {
	o, ok := other.(PointerType)
	return ok && t.Pointee.Equal(o.Pointee)
}

// OpaqueType stands in for any LLVM type this module does not need to
// look inside (ints, floats, structs, arrays, vectors, ...). Two
// OpaqueTypes are equal iff their names are equal, so callers should
// give distinct LLVM types distinct names (e.g. "i32", "i64", "{i32,i8}").
type OpaqueType struct {
	Name string
}

func (OpaqueType) isType() {}

func (t OpaqueType) Key() string { return t.Name }

func (t OpaqueType) Equal(other Type) bool {
	o, ok := other.(OpaqueType)
	return ok && t.Name == o.Name
}

// VoidType is the return type of a function that returns nothing.
type VoidType struct{}

func (VoidType) isType() {}

func (VoidType) Key() string { return "void" }

func (t VoidType) Equal(other Type) bool {
	_, ok := other.(VoidType)
	return ok
}
