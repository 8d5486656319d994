package lisp

import "fmt"

// SyntaxError is the error the reader returns when it can't finish
// parsing one expression: unbalanced parens, a malformed dotted
// pair, an unterminated string, or a bad number token (an integer
// out of range, or a token containing '.' that is not a decimal).
type SyntaxError struct {
	Message string
	Offset  int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s @ %d", e.Message, e.Offset)
}

// EvalError is the tagged error value: it is both a Go error (so
// internal helpers like car/cdr/arithmetic can return it through a
// normal (ValueRef, error) signature) and, wrapped by the interpreter
// into a KindError cell, a first-class Lisp Value that primitives can
// return to their caller instead of unwinding. Most kinds propagate
// as ordinary data rather than aborting the enclosing evaluation;
// only the evaluator's caller checks for the few kinds that do abort.
type EvalError struct {
	Kind    ErrorKind
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newEvalError(kind ErrorKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// asEvalError unwraps err into an *EvalError, wrapping any other
// error as a generic ErrType failure so callers never have to
// type-switch twice.
func asEvalError(err error) *EvalError {
	if ee, ok := err.(*EvalError); ok {
		return ee
	}
	return &EvalError{Kind: ErrType, Message: err.Error()}
}

// valueOrError converts a failed lookup, arity mismatch, type error,
// or not-applicable call into an ordinary KindError Value --
// evaluation keeps going, the Error just flows through like any other
// result. OutOfMemory and Timeout are the exceptions: the allocator
// couldn't build a replacement cell, or the supervisor already
// decided to cancel, so those still abort via a genuine Go error.
func (in *Interpreter) valueOrError(v ValueRef, err error) (ValueRef, error) {
	if err == nil {
		return v, nil
	}
	ee := asEvalError(err)
	if ee.Kind == ErrOutOfMemory || ee.Kind == ErrTimeout {
		return Nil, ee
	}
	return in.MakeError(ee.Kind, ee.Message)
}
