package lisp

// Environment model. An environment is a Lisp list of frames; a frame
// is itself a Lisp list of (name . value) pairs. Environments are
// ordinary heap Pairs, so GC traces through them with no special
// casing.
//
//   env   := (frame . parent-env) | ()
//   frame := ((name . value) (name . value) ...) | ()

// ExtendEnvironment creates a new frame binding params positionally
// to args, linked in front of parent. Fails with ArityError on a
// length mismatch.
func (in *Interpreter) ExtendEnvironment(params, args, parent ValueRef) (ValueRef, error) {
	frame := Nil
	p, a := params, args
	for {
		if p.IsNil() && a.IsNil() {
			break
		}
		if p.IsNil() || (a.IsNil() && p.IsPair()) {
			return Nil, newEvalError(ErrArity, "wrong number of arguments")
		}
		if !p.IsPair() {
			// Improper parameter list: treat the dotted tail
			// symbol as a rest-parameter bound to the remaining
			// args. Keeps ExtendEnvironment total over any proper
			// or dotted params list a reader might produce.
			binding, err := in.Cons(p, a)
			if err != nil {
				return Nil, err
			}
			frame, err = in.Cons(binding, frame)
			if err != nil {
				return Nil, err
			}
			a = Nil
			break
		}
		name := p.Left()
		value := a.Left()
		binding, err := in.Cons(name, value)
		if err != nil {
			return Nil, err
		}
		frame, err = in.Cons(binding, frame)
		if err != nil {
			return Nil, err
		}
		p = p.Right()
		a = a.Right()
	}
	return in.Cons(frame, parent)
}

// Lookup walks frames head (innermost) to tail (outermost), the
// first frame containing name wins. UnboundVariable if none do.
func Lookup(name string, env ValueRef) (ValueRef, error) {
	for e := env; !e.IsNil(); e = e.Right() {
		for f := e.Left(); !f.IsNil(); f = f.Right() {
			binding := f.Left()
			if binding.Left().IsSymbolNamed(name) {
				return binding.Right(), nil
			}
		}
	}
	return Nil, newEvalError(ErrUnboundVariable, "unbound variable: %s", name)
}

// Define inserts or overwrites name in the head (innermost) frame.
func (in *Interpreter) Define(name string, value, env ValueRef) error {
	if env.IsNil() {
		return newEvalError(ErrType, "define: no environment frame")
	}
	for f := env.Left(); !f.IsNil(); f = f.Right() {
		binding := f.Left()
		if binding.Left().IsSymbolNamed(name) {
			return SetCdr(binding, value)
		}
	}
	sym, err := in.MakeSymbol(name)
	if err != nil {
		return err
	}
	binding, err := in.Cons(sym, value)
	if err != nil {
		return err
	}
	newHead, err := in.Cons(binding, env.Left())
	if err != nil {
		return err
	}
	return SetCar(env, newHead)
}

// Set mutates the nearest binding of name to value. UnboundVariable
// if no binding exists anywhere in env.
func Set(name string, value ValueRef, env ValueRef) error {
	for e := env; !e.IsNil(); e = e.Right() {
		for f := e.Left(); !f.IsNil(); f = f.Right() {
			binding := f.Left()
			if binding.Left().IsSymbolNamed(name) {
				return SetCdr(binding, value)
			}
		}
	}
	return newEvalError(ErrUnboundVariable, "unbound variable: %s", name)
}
