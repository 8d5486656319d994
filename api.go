package lisp

// This file is the public surface for setup, cleanup, read, run and
// eval; eval-with-timeout lives in supervisor.go and print in
// printer.go. A handful of thin functions that sequence
// the lower-level pieces (reader, evaluator) and surface their
// errors, nothing more.
//
// Process-wide state lives in an explicit Interpreter context (see
// interpreter.go) rather than package globals, but the public surface
// still exposes a default instance for REPL convenience -- that
// default instance is Default below, used by the package-level
// convenience wrappers.

// Default is the package-level interpreter the free functions below
// operate on, for callers (such as cmd/golisp) that don't need more
// than one interpreter instance.
var Default *Interpreter

// SetupEnvironment builds a fresh interpreter, installs every
// primitive, binds them into a new global environment, and evaluates
// the bootstrap library against it. It also assigns the result to
// Default.
func SetupEnvironment() (*Interpreter, error) {
	in := NewInterpreter()
	if err := in.Setup(); err != nil {
		return nil, err
	}
	Default = in
	return in, nil
}

// Setup is the instance form of SetupEnvironment: it does not touch
// Default, so multiple independent interpreters can coexist.
func (in *Interpreter) Setup() error {
	in.registerPrimitives()

	var names, values []ValueRef
	var err error
	in.Prims.Each(func(name string, fn PrimitiveFn) {
		if err != nil {
			return
		}
		var sym, prim ValueRef
		sym, err = in.MakeSymbol(name)
		if err != nil {
			return
		}
		prim, err = in.MakePrimitive(name, fn)
		if err != nil {
			return
		}
		names = append(names, sym)
		values = append(values, prim)
	})
	if err != nil {
		return err
	}

	nameList, err := in.SliceToList(names)
	if err != nil {
		return err
	}
	valueList, err := in.SliceToList(values)
	if err != nil {
		return err
	}

	in.Globals, err = in.ExtendEnvironment(nameList, valueList, Nil)
	if err != nil {
		return err
	}

	return in.runBootstrap(in.Globals)
}

// Cleanup force-GCs and releases the global environment and
// primitives registry. After Cleanup, n_bytes_allocated is 0.
func (in *Interpreter) Cleanup() {
	in.Globals = Nil
	in.unpinRoots()
	in.RunGC(GCForce)
	in.Heap.reset()
	in.Prims = newPrimitiveRegistry()
}

// Cleanup releases the Default interpreter built by SetupEnvironment.
func Cleanup() {
	if Default != nil {
		Default.Cleanup()
	}
}

// ReadExp reads one expression from text starting at *offset against
// the Default interpreter.
func ReadExp(text string, offset *int) (ValueRef, error) {
	return Default.ReadExp(text, offset)
}

// RunExp reads and evaluates every top-level expression in text
// against in's global environment, returning the value of the last
// one (or Nil if text is empty). GC runs between top-level
// expressions.
func (in *Interpreter) RunExp(text string) (ValueRef, error) {
	offset := 0
	result := Nil
	for hasMoreInput(text, offset) {
		expr, err := in.ReadExp(text, &offset)
		if err != nil {
			return Nil, err
		}
		result, err = in.Eval(expr, in.Globals)
		if err != nil {
			return Nil, err
		}
		in.unpinRoots()
		in.RunGC(GCLowMem)
	}
	return result, nil
}

// runExpIn reads and evaluates every top-level expression in text
// against env; used by the bootstrap library (bootstrap.go) to run
// each fixed definition against the not-yet-Default global
// environment during Setup.
func (in *Interpreter) runExpIn(text string, env ValueRef) (ValueRef, error) {
	offset := 0
	result := Nil
	for hasMoreInput(text, offset) {
		expr, err := in.ReadExp(text, &offset)
		if err != nil {
			return Nil, err
		}
		result, err = in.Eval(expr, env)
		if err != nil {
			return Nil, err
		}
	}
	return result, nil
}

// hasMoreInput reports whether any non-atmosphere characters remain
// in text from offset onward.
func hasMoreInput(text string, offset int) bool {
	inComment := false
	for _, c := range text[offset:] {
		if inComment {
			inComment = c != '\n'
			continue
		}
		if c == ';' {
			inComment = true
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		return true
	}
	return false
}

// RunExp evaluates text against the Default interpreter.
func RunExp(text string) (ValueRef, error) {
	return Default.RunExp(text)
}

// Eval evaluates expr in env against the Default interpreter.
func Eval(expr, env ValueRef) (ValueRef, error) {
	return Default.Eval(expr, env)
}
