package lisp

// This file implements the core constructors and accessors: make_int,
// make_decimal, make_symbol, make_string, make_primitive, cons, car,
// cdr, length, is_equal. Every constructor funnels through
// Interpreter.alloc so the heap's hard-limit check applies uniformly.

func wrap(v *Value) ValueRef { return ValueRef{cell: v} }

// MakeInt allocates a fresh Integer cell.
func (in *Interpreter) MakeInt(n int64) (ValueRef, error) {
	v, err := in.alloc(KindInteger, "")
	if err != nil {
		return Nil, err
	}
	v.integer = n
	return wrap(v), nil
}

// MakeDecimal allocates a fresh Decimal cell.
func (in *Interpreter) MakeDecimal(f float64) (ValueRef, error) {
	v, err := in.alloc(KindDecimal, "")
	if err != nil {
		return Nil, err
	}
	v.decimal = f
	return wrap(v), nil
}

// MakeSymbol allocates a fresh Symbol cell. Symbols are NOT interned:
// every call allocates, and equality is by string comparison (see
// IsEqual), not by reference.
func (in *Interpreter) MakeSymbol(name string) (ValueRef, error) {
	v, err := in.alloc(KindSymbol, name)
	if err != nil {
		return Nil, err
	}
	return wrap(v), nil
}

// MakeString allocates a fresh String cell.
func (in *Interpreter) MakeString(text string) (ValueRef, error) {
	v, err := in.alloc(KindString, text)
	if err != nil {
		return Nil, err
	}
	return wrap(v), nil
}

// MakePrimitive allocates a fresh Primitive cell wrapping fn.
func (in *Interpreter) MakePrimitive(name string, fn PrimitiveFn) (ValueRef, error) {
	v, err := in.alloc(KindPrimitive, "")
	if err != nil {
		return Nil, err
	}
	v.prim = fn
	v.primName = name
	return wrap(v), nil
}

// MakeError allocates a fresh Error cell. It is both returned to
// Lisp code as data and, via asEvalError/EvalError, usable as a Go
// error.
func (in *Interpreter) MakeError(kind ErrorKind, message string) (ValueRef, error) {
	v, err := in.alloc(KindError, message)
	if err != nil {
		return Nil, err
	}
	v.errKind = kind
	v.errMsg = message
	return wrap(v), nil
}

// Cons allocates a Pair cell.
func (in *Interpreter) Cons(a, b ValueRef) (ValueRef, error) {
	v, err := in.alloc(KindPair, "")
	if err != nil {
		return Nil, err
	}
	v.left = a
	v.right = b
	return wrap(v), nil
}

// Car returns the first element of a pair. TypeError if r isn't one.
func Car(r ValueRef) (ValueRef, error) {
	if !r.IsPair() {
		return Nil, newEvalError(ErrType, "car: not a pair")
	}
	return r.Left(), nil
}

// Cdr returns the remainder of a pair. TypeError if r isn't one.
func Cdr(r ValueRef) (ValueRef, error) {
	if !r.IsPair() {
		return Nil, newEvalError(ErrType, "cdr: not a pair")
	}
	return r.Right(), nil
}

// SetCar mutates r's first element in place. Part of why the heap
// must be traced, not reference-counted: this can create cycles.
func SetCar(r, v ValueRef) error {
	if !r.IsPair() {
		return newEvalError(ErrType, "set-car!: not a pair")
	}
	r.cell.left = v
	return nil
}

// SetCdr mutates r's remainder in place.
func SetCdr(r, v ValueRef) error {
	if !r.IsPair() {
		return newEvalError(ErrType, "set-cdr!: not a pair")
	}
	r.cell.right = v
	return nil
}

// Length walks a proper list and returns its length. It fails on
// improper lists (a final cdr that isn't the empty list).
func Length(list ValueRef) (int, error) {
	n := 0
	for !list.IsNil() {
		if !list.IsPair() {
			return 0, newEvalError(ErrType, "length: improper list")
		}
		n++
		list = list.Right()
	}
	return n, nil
}

// ListToSlice collects a proper list's elements into a Go slice, for
// primitives that want random access to their arguments.
func ListToSlice(list ValueRef) ([]ValueRef, error) {
	var out []ValueRef
	for !list.IsNil() {
		if !list.IsPair() {
			return nil, newEvalError(ErrType, "improper list")
		}
		out = append(out, list.Left())
		list = list.Right()
	}
	return out, nil
}

// SliceToList builds a proper list from a Go slice, back to front.
func (in *Interpreter) SliceToList(items []ValueRef) (ValueRef, error) {
	out := Nil
	for i := len(items) - 1; i >= 0; i-- {
		var err error
		out, err = in.Cons(items[i], out)
		if err != nil {
			return Nil, err
		}
	}
	return out, nil
}

// IsEqual implements eq?: structural comparison for atoms (tag +
// payload), reference comparison for pairs. Two distinct pair cells
// with equal contents are not eq?.
func IsEqual(a, b ValueRef) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindEmpty:
		return true
	case KindInteger:
		return a.Int() == b.Int()
	case KindDecimal:
		return a.Dec() == b.Dec()
	case KindSymbol, KindString:
		return a.Text() == b.Text()
	case KindPair:
		return a.cell == b.cell
	case KindPrimitive:
		return a.cell == b.cell
	case KindError:
		return a.cell == b.cell
	default:
		return false
	}
}
