package lisp

import (
	"fmt"
	"sync/atomic"
)

// Evaluator. Dispatch is by structural case: a switch keyed on a
// discriminant, each arm a few lines deferring to shared helpers,
// where the discriminant is an expr's Value shape rather than a
// bytecode opcode, since this evaluator walks the value tree directly
// instead of compiling to an intermediate form.

// Eval evaluates expr in env and returns its value. It pins expr and
// env as transient GC roots for the duration of the call; the result
// is not pinned once the call returns.
func (in *Interpreter) Eval(expr, env ValueRef) (ValueRef, error) {
	return in.eval(expr, env, nil)
}

// cancelFlag lets EvalWithTimeout (supervisor.go) ask eval to check
// for cancellation between sub-evaluations and between cond/begin
// steps.
type cancelFlag struct {
	cancelled atomic.Bool
}

func (c *cancelFlag) check() error {
	if c != nil && c.cancelled.Load() {
		return newEvalError(ErrTimeout, "evaluation cancelled")
	}
	return nil
}

func (in *Interpreter) eval(expr, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	if err := cancel.check(); err != nil {
		return Nil, err
	}

	saved := len(in.roots)
	defer func() { in.roots = in.roots[:saved] }()

	in.pinRoot(expr)
	in.pinRoot(env)

	switch expr.Kind() {
	case KindEmpty, KindInteger, KindDecimal, KindString, KindError, KindPrimitive:
		// self-evaluating
		return expr, nil

	case KindSymbol:
		// #t and #f are self-evaluating booleans, not variables.
		if expr.Text() == "#t" || expr.Text() == "#f" {
			return expr, nil
		}
		v, err := Lookup(expr.Text(), env)
		return in.valueOrError(v, err)

	case KindPair:
		return in.evalPair(expr, env, cancel)

	default:
		return Nil, newEvalError(ErrType, "cannot evaluate %s", expr)
	}
}

func (in *Interpreter) evalPair(expr, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	op := expr.Left()
	rest := expr.Right()

	if op.Kind() == KindSymbol {
		switch op.Text() {
		case "quote":
			return rest.Left(), nil
		case "set!":
			return in.evalSet(rest, env, cancel)
		case "define":
			return in.evalDefine(rest, env, cancel)
		case "if":
			return in.evalIf(rest, env, cancel)
		case "cond":
			return in.evalCond(rest, env, cancel)
		case "lambda":
			return in.makeClosure(rest, env)
		case "begin":
			return in.evalSequence(rest, env, cancel)
		case "let":
			return in.evalLet(rest, env, cancel)
		}
	}

	fn, err := in.eval(op, env, cancel)
	if err != nil {
		return Nil, err
	}

	args, err := in.evalArgs(rest, env, cancel)
	if err != nil {
		return Nil, err
	}
	in.pinRoot(args)

	return in.apply(fn, args, cancel)
}

// evalArgs evaluates each argument strictly left-to-right.
func (in *Interpreter) evalArgs(list, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	items, err := ListToSlice(list)
	if err != nil {
		return Nil, err
	}
	out := make([]ValueRef, len(items))
	for i, item := range items {
		v, err := in.eval(item, env, cancel)
		if err != nil {
			return Nil, err
		}
		out[i] = v
		in.pinRoot(v)
	}
	return in.SliceToList(out)
}

func (in *Interpreter) evalSet(rest, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	name := rest.Left()
	valueExpr := rest.Right().Left()
	v, err := in.eval(valueExpr, env, cancel)
	if err != nil {
		return Nil, err
	}
	if err := Set(name.Text(), v, env); err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.MakeSymbol("ok")
}

// evalDefine handles both (define name v) and the function-definition
// sugar (define (name params...) body...) => (define name (lambda
// (params...) body...)).
func (in *Interpreter) evalDefine(rest, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	target := rest.Left()
	if target.Kind() == KindSymbol {
		v, err := in.eval(rest.Right().Left(), env, cancel)
		if err != nil {
			return Nil, err
		}
		if err := in.Define(target.Text(), v, env); err != nil {
			return in.valueOrError(Nil, err)
		}
		return in.MakeSymbol("ok")
	}

	// Function form: target = (name . params), body = rest.Right()
	name := target.Left()
	params := target.Right()
	body := rest.Right()
	closure, err := in.makeClosureFrom(params, body, env)
	if err != nil {
		return Nil, err
	}
	if err := in.Define(name.Text(), closure, env); err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.MakeSymbol("ok")
}

func (in *Interpreter) evalIf(rest, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	pred := rest.Left()
	conseq := rest.Right().Left()
	altClause := rest.Right().Right()

	pv, err := in.eval(pred, env, cancel)
	if err != nil {
		return Nil, err
	}
	if !pv.IsFalse() {
		return in.eval(conseq, env, cancel)
	}
	if altClause.IsNil() {
		return in.MakeSymbol("#f")
	}
	return in.eval(altClause.Left(), env, cancel)
}

func (in *Interpreter) evalCond(clauses, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	for c := clauses; !c.IsNil(); c = c.Right() {
		if err := cancel.check(); err != nil {
			return Nil, err
		}
		clause := c.Left()
		test := clause.Left()
		body := clause.Right()

		if test.IsSymbolNamed("else") {
			return in.evalSequence(body, env, cancel)
		}
		tv, err := in.eval(test, env, cancel)
		if err != nil {
			return Nil, err
		}
		if !tv.IsFalse() {
			if body.IsNil() {
				return tv, nil
			}
			return in.evalSequence(body, env, cancel)
		}
	}
	return in.MakeSymbol("#f")
}

// evalSequence evaluates each expression in order, returning the
// last value (begin and closure bodies both use this).
func (in *Interpreter) evalSequence(body, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	if body.IsNil() {
		return in.MakeSymbol("#f")
	}
	result := Nil
	for e := body; !e.IsNil(); e = e.Right() {
		if err := cancel.check(); err != nil {
			return Nil, err
		}
		v, err := in.eval(e.Left(), env, cancel)
		if err != nil {
			return Nil, err
		}
		result = v
	}
	return result, nil
}

// evalLet desugars (let ((n v)...) body...) into
// ((lambda (n...) body...) v...).
func (in *Interpreter) evalLet(rest, env ValueRef, cancel *cancelFlag) (ValueRef, error) {
	bindings := rest.Left()
	body := rest.Right()

	var names, values []ValueRef
	for b := bindings; !b.IsNil(); b = b.Right() {
		pair := b.Left()
		names = append(names, pair.Left())
		values = append(values, pair.Right().Left())
	}
	paramList, err := in.SliceToList(names)
	if err != nil {
		return Nil, err
	}
	closure, err := in.makeClosureFrom(paramList, body, env)
	if err != nil {
		return Nil, err
	}
	argValues := make([]ValueRef, len(values))
	for i, v := range values {
		ev, err := in.eval(v, env, cancel)
		if err != nil {
			return Nil, err
		}
		argValues[i] = ev
		in.pinRoot(ev)
	}
	argList, err := in.SliceToList(argValues)
	if err != nil {
		return Nil, err
	}
	in.pinRoot(argList)
	return in.apply(closure, argList, cancel)
}

// Closures are represented as a pair whose first element is the
// symbol "closure" and whose remainder is (parameters body . env):
// the captured environment is the final cdr.

func (in *Interpreter) makeClosure(rest, env ValueRef) (ValueRef, error) {
	params := rest.Left()
	body := rest.Right()
	return in.makeClosureFrom(params, body, env)
}

func (in *Interpreter) makeClosureFrom(params, body, env ValueRef) (ValueRef, error) {
	tag, err := in.MakeSymbol("closure")
	if err != nil {
		return Nil, err
	}
	bodyEnv, err := in.Cons(body, env)
	if err != nil {
		return Nil, err
	}
	paramsRest, err := in.Cons(params, bodyEnv)
	if err != nil {
		return Nil, err
	}
	return in.Cons(tag, paramsRest)
}

func isClosure(v ValueRef) bool {
	return v.IsPair() && v.Left().IsSymbolNamed("closure")
}

// Apply applies fn to the already-evaluated args list. If fn is a
// primitive, it calls the native function directly; if a closure, it
// extends the captured environment and evaluates the body
// sequentially; anything else is a NotApplicable error.
func (in *Interpreter) Apply(fn, args ValueRef) (ValueRef, error) {
	return in.apply(fn, args, nil)
}

func (in *Interpreter) apply(fn, args ValueRef, cancel *cancelFlag) (ValueRef, error) {
	if err := cancel.check(); err != nil {
		return Nil, err
	}

	if fn.Kind() == KindPrimitive {
		return fn.PrimFn()(in, args)
	}

	if isClosure(fn) {
		paramsRest := fn.Right()
		params := paramsRest.Left()
		bodyEnv := paramsRest.Right()
		body := bodyEnv.Left()
		capturedEnv := bodyEnv.Right()

		callEnv, err := in.ExtendEnvironment(params, args, capturedEnv)
		if err != nil {
			return in.valueOrError(Nil, err)
		}
		return in.evalSequence(body, callEnv, cancel)
	}

	return in.MakeError(ErrNotApplicable, fmt.Sprintf("not applicable: %s", fn))
}
