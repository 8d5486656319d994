package lisp

import "log"

// Interpreter is the encapsulated context threaded through the
// public API in place of raw process-wide globals: the heap, the
// global environment, the primitives registry and the configuration
// all live here instead of package-level variables.
//
// A package-level Default instance is still exposed by api.go for
// REPL-style callers that don't need more than one interpreter.
type Interpreter struct {
	Heap    *Heap
	Config  *Config
	Globals ValueRef // the global environment (a Pair of frames)
	Prims   *PrimitiveRegistry

	// roots holds the transient GC roots pinned by in-flight eval
	// call frames: current expression, current environment, and any
	// already-evaluated arguments/bindings still awaiting combination.
	// Each eval frame truncates this back to its entry length on
	// return, so the set in here at any instant reflects only the
	// live Go call stack, not the whole top-level evaluation.
	roots []ValueRef
}

// NewInterpreter builds an empty interpreter: a heap and a config,
// but no global environment yet. Call its Setup method to install
// primitives and run the bootstrap library (SetupEnvironment builds
// and sets up a new interpreter in one step).
func NewInterpreter() *Interpreter {
	cfg := NewConfig()
	return &Interpreter{
		Heap:   newHeap(log.Default()),
		Config: cfg,
		Prims:  newPrimitiveRegistry(),
	}
}

func (in *Interpreter) verbosity() Verbosity {
	return Verbosity(in.Config.GetInt(CfgMemVerbosity))
}

func (in *Interpreter) hardLimit() int64 {
	return int64(in.Config.GetInt(CfgMemLimHard))
}

func (in *Interpreter) softLimit() int64 {
	return int64(in.Config.GetInt(CfgMemLimSoft))
}

// pinRoot records v as a transient GC root. Roots pinned inside an
// eval call frame are released when that frame returns; any others
// stay pinned until unpinRoots (which api.go's RunExp calls between
// top-level expressions).
func (in *Interpreter) pinRoot(v ValueRef) {
	in.roots = append(in.roots, v)
}

// unpinRoots drops every pinned root. Used at top-level expression
// boundaries and by Cleanup, where no eval call frame is on the stack
// to truncate its own slice of roots.
func (in *Interpreter) unpinRoots() {
	in.roots = in.roots[:0]
}

// alloc is the single allocation entry point every constructor in
// constructors.go funnels through, so the hard-limit check and verbosity
// tracing in heap.go apply uniformly.
func (in *Interpreter) alloc(kind ValueKind, text string) (*Value, error) {
	v, err := in.Heap.alloc(kind, text, in.verbosity(), in.hardLimit())
	if err != nil {
		// One retry after an opportunistic GC on explicit
		// allocation failure.
		in.RunGC(GCForce)
		return in.Heap.alloc(kind, text, in.verbosity(), in.hardLimit())
	}
	return v, nil
}
