package lisp

import (
	"fmt"
)

// ErrorKind distinguishes the ways evaluation and reading can fail.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrUnboundVariable
	ErrType
	ErrArity
	ErrArithmetic
	ErrNotApplicable
	ErrOutOfMemory
	ErrTimeout
	ErrConfig
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax-error"
	case ErrUnboundVariable:
		return "unbound-variable"
	case ErrType:
		return "type-error"
	case ErrArity:
		return "arity-error"
	case ErrArithmetic:
		return "arithmetic-error"
	case ErrNotApplicable:
		return "not-applicable"
	case ErrOutOfMemory:
		return "out-of-memory"
	case ErrTimeout:
		return "timeout"
	case ErrConfig:
		return "config-error"
	default:
		return "error"
	}
}

// ValueKind is the tag of a heap cell.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindInteger
	KindDecimal
	KindSymbol
	KindString
	KindPair
	KindPrimitive
	KindError
)

// PrimitiveFn is the Go signature of a native procedure. It receives
// the already-evaluated argument list (as a Lisp list, possibly
// empty) and the interpreter it is running under.
type PrimitiveFn func(in *Interpreter, args ValueRef) (ValueRef, error)

// Value is one heap cell's payload. The cell wrapping a Value lives
// in the Heap's allocation list; it is never freed except by GC.
type Value struct {
	kind ValueKind

	integer int64
	decimal float64
	text    string // symbol name or string contents
	left    ValueRef
	right   ValueRef
	prim    PrimitiveFn
	primName string
	errKind ErrorKind
	errMsg  string

	marked bool
	size   int
}

// ValueRef is an opaque handle to a heap cell. The zero ValueRef is
// the distinguished empty list, represented by a nil reference rather
// than a tagged cell.
type ValueRef struct {
	cell *Value
}

// Nil is the canonical empty-list reference.
var Nil = ValueRef{}

// IsNil reports whether r is the empty list.
func (r ValueRef) IsNil() bool { return r.cell == nil }

func (r ValueRef) Kind() ValueKind {
	if r.cell == nil {
		return KindEmpty
	}
	return r.cell.kind
}

func (r ValueRef) Int() int64 {
	if r.cell == nil {
		return 0
	}
	return r.cell.integer
}

func (r ValueRef) Dec() float64 {
	if r.cell == nil {
		return 0
	}
	return r.cell.decimal
}

func (r ValueRef) Text() string {
	if r.cell == nil {
		return ""
	}
	return r.cell.text
}

func (r ValueRef) Left() ValueRef {
	if r.cell == nil {
		return Nil
	}
	return r.cell.left
}

func (r ValueRef) Right() ValueRef {
	if r.cell == nil {
		return Nil
	}
	return r.cell.right
}

func (r ValueRef) ErrorKind() ErrorKind {
	if r.cell == nil {
		return ErrSyntax
	}
	return r.cell.errKind
}

func (r ValueRef) ErrorMessage() string {
	if r.cell == nil {
		return ""
	}
	return r.cell.errMsg
}

func (r ValueRef) PrimName() string {
	if r.cell == nil {
		return ""
	}
	return r.cell.primName
}

func (r ValueRef) PrimFn() PrimitiveFn {
	if r.cell == nil {
		return nil
	}
	return r.cell.prim
}

// IsPair reports whether r is a non-empty Pair cell.
func (r ValueRef) IsPair() bool { return r.Kind() == KindPair }

// IsSymbolNamed reports whether r is a Symbol cell with the given name.
func (r ValueRef) IsSymbolNamed(name string) bool {
	return r.Kind() == KindSymbol && r.Text() == name
}

// IsFalse reports truthiness: only the symbol #f is false.
func (r ValueRef) IsFalse() bool {
	return r.IsSymbolNamed("#f")
}

// String renders a debugging form of r; it is NOT the Lisp printer
// (see printer.go for that syntax). Used in test failure messages
// and in the text of evaluator error messages.
func (r ValueRef) String() string {
	switch r.Kind() {
	case KindEmpty:
		return "()"
	case KindInteger:
		return fmt.Sprintf("%d", r.Int())
	case KindDecimal:
		return fmt.Sprintf("%g", r.Dec())
	case KindSymbol:
		return r.Text()
	case KindString:
		return fmt.Sprintf("%q", r.Text())
	case KindPair:
		return fmt.Sprintf("(%s . %s)", r.Left(), r.Right())
	case KindPrimitive:
		return fmt.Sprintf("#<primitive %s>", r.PrimName())
	case KindError:
		return fmt.Sprintf("#<error %s: %s>", r.ErrorKind(), r.ErrorMessage())
	default:
		return "#<unknown>"
	}
}

// cellSize is the byte-accounting unit behind n_bytes_allocated; it
// does not need to match Go's actual allocator sizes, only to be
// stable and monotonic so n_bytes_allocated equals the sum of live
// cell sizes.
func cellSize(text string) int {
	const base = 32
	return base + len(text)
}
