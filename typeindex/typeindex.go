// Package typeindex implements §4.1 of the spec: a map from function
// type to the set of functions having that type, used by the call
// graph builder to conservatively resolve indirect call targets.
package typeindex

import "github.com/irgraph/analysis/ir"

// Index maps a structural function type to the names of every
// function in the scanned module(s) that has that type. Built once
// (by New or NewCrossModule) and read-only thereafter.
type Index struct {
	byType map[string][]string
}

// New scans every function in module and buckets its name by its
// full function type (return type + parameter types + variadic flag).
// Equality on the type is structural: two functions with
// independently-built but identical FuncType values land in the same
// bucket.
func New(module ir.Module) *Index {
	return build(module.Functions())
}

// NewCrossModule scans every function across all the given modules and
// buckets them together, so an indirect call in one module can
// conservatively resolve to a function defined in any of them.
func NewCrossModule(modules []ir.Module) *Index {
	var all []ir.Function
	for _, m := range modules {
		all = append(all, m.Functions()...)
	}
	return build(all)
}

func build(funcs []ir.Function) *Index {
	idx := &Index{byType: make(map[string][]string)}
	for _, f := range funcs {
		key := f.FuncType().Key()
		idx.byType[key] = append(idx.byType[key], f.Name())
	}
	return idx
}

// FunctionsWithType returns the names of every function with exactly
// t's structural type. An absent key returns an empty (nil) slice,
// never an error — a function pointer with no matching function in
// the analyzed module(s) conservatively resolves to "calls nothing
// we know of", not a failure.
func (idx *Index) FunctionsWithType(t ir.FuncType) []string {
	return idx.byType[t.Key()]
}
