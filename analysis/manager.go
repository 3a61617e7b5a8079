// Package analysis implements §4.7 of the spec: AnalysisManager, the
// single user-facing entry point binding a fixed set of ir.Modules to
// a lazy, on-demand cache of the four analyses in typeindex,
// callgraph, cfg, dom, and cdg.
//
// Adapted from original_source/src/lib.rs's Analysis<'m> (a struct of
// RefCell<Option<T>> fields, each filled by get_or_insert_with on
// first access) — the same lazy-cache contract, reimplemented with
// Go's natural idiom for interior mutability under concurrent access:
// a mutex-guarded map of per-key sync.Once cells (lazy, in lazy.go)
// rather than a single-threaded RefCell, since spec.md §5 allows (but
// does not require) an AnalysisManager to be made safe for concurrent
// use.
package analysis

import (
	"sync"

	"github.com/irgraph/analysis/analysiserr"
	"github.com/irgraph/analysis/callgraph"
	"github.com/irgraph/analysis/cdg"
	"github.com/irgraph/analysis/cfg"
	"github.com/irgraph/analysis/dom"
	"github.com/irgraph/analysis/internal/xlog"
	"github.com/irgraph/analysis/ir"
	"github.com/irgraph/analysis/typeindex"
)

// AnalysisManager binds a fixed set of IR modules to a lazy cache of
// call graph, type index, CFG, dominator tree, post-dominator tree,
// and control dependence graph analyses.
//
// Construction is cheap (spec.md §4.7): it only scans module function
// lists to build a name -> (module, function) index, not any of the
// analyses themselves. Per-function analyses are looked up by name
// regardless of whether the manager was built for one module or
// several; in the cross-module case, functions from every registered
// module share one name space (spec.md §3 — a name collision across
// modules is a user error this package does not attempt to detect or
// disambiguate, mirroring the original crate).
type AnalysisManager struct {
	modules []ir.Module
	funcs   map[string]ir.Function

	logger *xlog.Logger

	mu sync.Mutex

	callGraph lazy[*callgraph.Graph]
	typeIndex lazy[*typeindex.Index]
	cfgCache  map[string]*lazy[*cfg.CFG]
	domCache  map[string]*lazy[*dom.DominatorTree]
	pdomCache map[string]*lazy[*dom.PostDominatorTree]
	cdgCache  map[string]*lazy[*cdg.CDG]
}

// Option configures an AnalysisManager at construction time.
type Option func(*AnalysisManager)

// WithLogger sets the logger used to trace cache builds. The default
// is a silent logger: per spec.md §5/§7 this module never logs above
// debug level, so WithLogger only matters to a caller who explicitly
// wants that trace (e.g. while debugging a slow dominator fixed-point
// on a huge function).
func WithLogger(l *xlog.Logger) Option {
	return func(m *AnalysisManager) { m.logger = l }
}

func newManager(modules []ir.Module, opts []Option) *AnalysisManager {
	m := &AnalysisManager{
		modules:   modules,
		funcs:     make(map[string]ir.Function),
		logger:    xlog.Discard(),
		cfgCache:  make(map[string]*lazy[*cfg.CFG]),
		domCache:  make(map[string]*lazy[*dom.DominatorTree]),
		pdomCache: make(map[string]*lazy[*dom.PostDominatorTree]),
		cdgCache:  make(map[string]*lazy[*cdg.CDG]),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, mod := range modules {
		for _, fn := range mod.Functions() {
			// First definition wins; a genuine collision is a user
			// error this package does not define disambiguation for
			// (spec.md §3), and panicking here would make every
			// cross-module construction as fragile as its noisiest
			// input. Per-function queries simply resolve to whichever
			// definition was registered first.
			if _, dup := m.funcs[fn.Name()]; !dup {
				m.funcs[fn.Name()] = fn
			}
		}
	}
	return m
}

// NewModuleAnalysis creates an AnalysisManager rooted at a single
// module.
func NewModuleAnalysis(module ir.Module, opts ...Option) *AnalysisManager {
	return newManager([]ir.Module{module}, opts)
}

// NewCrossModuleAnalysis creates an AnalysisManager whose CallGraph
// and FunctionsByType span every given module, with per-function
// analyses resolving a function name against whichever module defines
// it.
func NewCrossModuleAnalysis(modules []ir.Module, opts ...Option) *AnalysisManager {
	cp := make([]ir.Module, len(modules))
	copy(cp, modules)
	return newManager(cp, opts)
}

func (m *AnalysisManager) lookupFunction(name string) (ir.Function, error) {
	fn, ok := m.funcs[name]
	if !ok {
		return nil, analysiserr.NewUnknownFunction(name)
	}
	return fn, nil
}

// FunctionsByType returns the cached FunctionsByType index over all of
// this manager's modules, building it on first call.
func (m *AnalysisManager) FunctionsByType() *typeindex.Index {
	idx, _ := m.typeIndex.get(func() (*typeindex.Index, error) {
		m.logger.Debug("building type index over %d module(s)", len(m.modules))
		return typeindex.NewCrossModule(m.modules), nil
	})
	return idx
}

// CallGraph returns the cached call graph over all of this manager's
// modules, building it on first call. Indirect call targets are
// resolved against FunctionsByType, which is itself built (and cached)
// as a side effect of the first CallGraph call if it has not been
// requested yet.
func (m *AnalysisManager) CallGraph() (*callgraph.Graph, error) {
	return m.callGraph.get(func() (*callgraph.Graph, error) {
		idx := m.FunctionsByType()
		m.logger.Debug("building call graph over %d module(s)", len(m.modules))
		return callgraph.New(m.modules, idx)
	})
}

// ControlFlowGraph returns the cached CFG of the named function,
// building it on first call. Returns UnknownFunction if name is not
// defined in any registered module.
func (m *AnalysisManager) ControlFlowGraph(name string) (*cfg.CFG, error) {
	fn, err := m.lookupFunction(name)
	if err != nil {
		return nil, err
	}
	return m.cfgEntry(name).get(func() (*cfg.CFG, error) {
		m.logger.Debug("building CFG for %s", name)
		return cfg.New(fn)
	})
}

// DominatorTree returns the cached dominator tree of the named
// function, building its CFG first if needed.
func (m *AnalysisManager) DominatorTree(name string) (*dom.DominatorTree, error) {
	c, err := m.ControlFlowGraph(name)
	if err != nil {
		return nil, err
	}
	return m.domEntry(name).get(func() (*dom.DominatorTree, error) {
		m.logger.Debug("building dominator tree for %s", name)
		return dom.NewDominatorTree(c), nil
	})
}

// PostDominatorTree returns the cached post-dominator tree of the
// named function, building its CFG first if needed.
func (m *AnalysisManager) PostDominatorTree(name string) (*dom.PostDominatorTree, error) {
	c, err := m.ControlFlowGraph(name)
	if err != nil {
		return nil, err
	}
	return m.pdomEntry(name).get(func() (*dom.PostDominatorTree, error) {
		m.logger.Debug("building post-dominator tree for %s", name)
		return dom.NewPostDominatorTree(c), nil
	})
}

// ControlDependenceGraph returns the cached control dependence graph
// of the named function, building its CFG and PostDominatorTree first
// if needed.
func (m *AnalysisManager) ControlDependenceGraph(name string) (*cdg.CDG, error) {
	c, err := m.ControlFlowGraph(name)
	if err != nil {
		return nil, err
	}
	pd, err := m.PostDominatorTree(name)
	if err != nil {
		return nil, err
	}
	return m.cdgEntry(name).get(func() (*cdg.CDG, error) {
		m.logger.Debug("building control dependence graph for %s", name)
		return cdg.New(c, pd), nil
	})
}

func (m *AnalysisManager) cfgEntry(name string) *lazy[*cfg.CFG] {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cfgCache[name]
	if !ok {
		e = &lazy[*cfg.CFG]{}
		m.cfgCache[name] = e
	}
	return e
}

func (m *AnalysisManager) domEntry(name string) *lazy[*dom.DominatorTree] {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.domCache[name]
	if !ok {
		e = &lazy[*dom.DominatorTree]{}
		m.domCache[name] = e
	}
	return e
}

func (m *AnalysisManager) pdomEntry(name string) *lazy[*dom.PostDominatorTree] {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.pdomCache[name]
	if !ok {
		e = &lazy[*dom.PostDominatorTree]{}
		m.pdomCache[name] = e
	}
	return e
}

func (m *AnalysisManager) cdgEntry(name string) *lazy[*cdg.CDG] {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cdgCache[name]
	if !ok {
		e = &lazy[*cdg.CDG]{}
		m.cdgCache[name] = e
	}
	return e
}

// Stats reports how much of the cache has been populated so far, for
// callers embedding this in a larger tool that want to show analysis
// progress. Supplements spec.md §4.7's cache contract; it is purely
// observational and never triggers a build.
type Stats struct {
	CallGraphBuilt        bool
	TypeIndexBuilt        bool
	CFGsBuilt             int
	DominatorTreesBuilt   int
	PostDomTreesBuilt     int
	ControlDepGraphsBuilt int
}

// Stats returns a snapshot of which analyses have been built so far.
func (m *AnalysisManager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{
		CallGraphBuilt: m.callGraph.done,
		TypeIndexBuilt: m.typeIndex.done,
	}
	for _, e := range m.cfgCache {
		if e.done {
			s.CFGsBuilt++
		}
	}
	for _, e := range m.domCache {
		if e.done {
			s.DominatorTreesBuilt++
		}
	}
	for _, e := range m.pdomCache {
		if e.done {
			s.PostDomTreesBuilt++
		}
	}
	for _, e := range m.cdgCache {
		if e.done {
			s.ControlDepGraphsBuilt++
		}
	}
	return s
}
