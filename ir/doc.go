// Package ir defines the read-only surface of an SSA compiler
// intermediate representation (modeled on the LLVM IR instruction and
// terminator set) that the analyses in this module consume.
//
// Nothing in this package parses bitcode, textual IR, or any other
// on-disk format — that is explicitly out of scope. Callers construct
// an ir.Module however they like (by hand, by wrapping some other
// in-memory compiler IR, or via the NewModule/NewFunction/NewBlock
// constructors in builder.go, which exist mainly to make tests and the
// example CLI in cmd/irinspect convenient to write) and hand it to
// analysis.NewModuleAnalysis or analysis.NewCrossModuleAnalysis.
package ir
