package lisp

import "math"

// primEntry is one node of the primitives registry, a doubly-linked
// list: AddPrimitive appends, and Setup later walks the whole list to
// build the initial global bindings.
type primEntry struct {
	name string
	fn   PrimitiveFn
	next *primEntry
	prev *primEntry
}

// PrimitiveRegistry is the name -> native function table.
type PrimitiveRegistry struct {
	head *primEntry
	tail *primEntry
}

func newPrimitiveRegistry() *PrimitiveRegistry {
	return &PrimitiveRegistry{}
}

// AddPrimitive appends a new (name, fn) entry to the registry.
func (p *PrimitiveRegistry) AddPrimitive(name string, fn PrimitiveFn) {
	e := &primEntry{name: name, fn: fn}
	if p.tail == nil {
		p.head = e
		p.tail = e
		return
	}
	e.prev = p.tail
	p.tail.next = e
	p.tail = e
}

// Each calls f for every registered primitive, oldest first.
func (p *PrimitiveRegistry) Each(f func(name string, fn PrimitiveFn)) {
	for e := p.head; e != nil; e = e.next {
		f(e.name, e.fn)
	}
}

// registerPrimitives installs the full primitive set.
func (in *Interpreter) registerPrimitives() {
	r := in.Prims

	r.AddPrimitive("+", primAdd)
	r.AddPrimitive("*", primMul)
	r.AddPrimitive("-", primSub)
	r.AddPrimitive("/", primDiv)
	r.AddPrimitive("=", primCompEq)
	r.AddPrimitive("<", primCompLess)
	r.AddPrimitive(">", primCompMore)
	r.AddPrimitive("or", primOr)
	r.AddPrimitive("and", primAnd)
	r.AddPrimitive("not", primNot)
	r.AddPrimitive("floor", primFloor)
	r.AddPrimitive("ceiling", primCeiling)
	r.AddPrimitive("truncate", primTrunc)
	r.AddPrimitive("round", primRound)
	r.AddPrimitive("max", primMax)
	r.AddPrimitive("min", primMin)
	r.AddPrimitive("eq?", primEq)
	r.AddPrimitive("car", primCar)
	r.AddPrimitive("cdr", primCdr)
	r.AddPrimitive("set-car!", primSetCar)
	r.AddPrimitive("set-cdr!", primSetCdr)
	r.AddPrimitive("cons", primCons)
	r.AddPrimitive("list", primList)
	r.AddPrimitive("number?", primIsNum)
	r.AddPrimitive("real?", primIsNum)
	r.AddPrimitive("integer?", primIsInt)
	r.AddPrimitive("procedure?", primIsProc)
	r.AddPrimitive("set-config!", primSetConfig)
	r.AddPrimitive("get-config", primGetConfig)
	r.AddPrimitive("symbol->string", primSymToStr)
	r.AddPrimitive("string->symbol", primStrToSym)
	r.AddPrimitive("symbol?", primIsSym)
	r.AddPrimitive("string?", primIsStr)
	r.AddPrimitive("pair?", primIsPair)
}

// unary/binary argument helpers -------------------------------------
//
// requireArity reports failure as a Go error; every primitive
// immediately routes that error through in.valueOrError so it becomes
// an ordinary returned Error value instead of aborting the enclosing
// eval (see errors.go). Type-check failures are built directly with
// in.MakeError.

func requireArity(args ValueRef, n int) ([]ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, newEvalError(ErrArity, "expected %d argument(s), got %d", n, len(items))
	}
	return items, nil
}

func isNumeric(v ValueRef) bool {
	return v.Kind() == KindInteger || v.Kind() == KindDecimal
}

func numericValue(v ValueRef) float64 {
	if v.Kind() == KindInteger {
		return float64(v.Int())
	}
	return v.Dec()
}

// makeBool returns the Lisp boolean symbol for b.
func (in *Interpreter) makeBool(b bool) (ValueRef, error) {
	if b {
		return in.MakeSymbol("#t")
	}
	return in.MakeSymbol("#f")
}

// Arithmetic ----------------------------------------------------------
//
// Contract: the result is the mathematical sum/difference of the
// inputs, integer if every input is integer AND the mathematical
// result is itself integer-valued, else decimal.

func primAdd(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	allInt := true
	var total float64
	for _, it := range items {
		if !isNumeric(it) {
			return in.MakeError(ErrType, "+: non-numeric argument")
		}
		if it.Kind() != KindInteger {
			allInt = false
		}
		total += numericValue(it)
	}
	return in.numericResult(total, allInt)
}

func primMul(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	allInt := true
	total := 1.0
	for _, it := range items {
		if !isNumeric(it) {
			return in.MakeError(ErrType, "*: non-numeric argument")
		}
		if it.Kind() != KindInteger {
			allInt = false
		}
		total *= numericValue(it)
	}
	return in.numericResult(total, allInt)
}

// primSub: "(-)" with one argument negates; (- a b c ...) is
// a - b - c - ...
func primSub(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if len(items) == 0 {
		return in.MakeError(ErrArity, "-: needs at least one argument")
	}
	if !isNumeric(items[0]) {
		return in.MakeError(ErrType, "-: non-numeric argument")
	}
	allInt := items[0].Kind() == KindInteger

	if len(items) == 1 {
		return in.numericResult(-numericValue(items[0]), allInt)
	}

	total := numericValue(items[0])
	for _, it := range items[1:] {
		if !isNumeric(it) {
			return in.MakeError(ErrType, "-: non-numeric argument")
		}
		if it.Kind() != KindInteger {
			allInt = false
		}
		total -= numericValue(it)
	}
	return in.numericResult(total, allInt)
}

// primDiv: "(/)" with one argument reciprocates; division by zero is
// an ArithmeticError.
func primDiv(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if len(items) == 0 {
		return in.MakeError(ErrArity, "/: needs at least one argument")
	}
	if !isNumeric(items[0]) {
		return in.MakeError(ErrType, "/: non-numeric argument")
	}
	allInt := items[0].Kind() == KindInteger

	if len(items) == 1 {
		if numericValue(items[0]) == 0 {
			return in.MakeError(ErrArithmetic, "/: division by zero")
		}
		return in.numericResult(1/numericValue(items[0]), allInt)
	}

	total := numericValue(items[0])
	for _, it := range items[1:] {
		if !isNumeric(it) {
			return in.MakeError(ErrType, "/: non-numeric argument")
		}
		if numericValue(it) == 0 {
			return in.MakeError(ErrArithmetic, "/: division by zero")
		}
		if it.Kind() != KindInteger {
			allInt = false
		}
		total /= numericValue(it)
	}
	return in.numericResult(total, allInt)
}

// numericResult returns an Integer cell if allInt is true and f has
// no fractional part, else a Decimal cell.
func (in *Interpreter) numericResult(f float64, allInt bool) (ValueRef, error) {
	if allInt && f == math.Trunc(f) {
		return in.MakeInt(int64(f))
	}
	return in.MakeDecimal(f)
}

// Comparison ----------------------------------------------------------

func primCompEq(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	// = returns #f, not an error, on non-numeric input.
	if len(items) != 2 || !isNumeric(items[0]) || !isNumeric(items[1]) {
		return in.makeBool(false)
	}
	return in.makeBool(numericValue(items[0]) == numericValue(items[1]))
}

func primCompLess(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if !isNumeric(items[0]) || !isNumeric(items[1]) {
		return in.MakeError(ErrType, "<: non-numeric argument")
	}
	return in.makeBool(numericValue(items[0]) < numericValue(items[1]))
}

func primCompMore(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if !isNumeric(items[0]) || !isNumeric(items[1]) {
		return in.MakeError(ErrType, ">: non-numeric argument")
	}
	return in.makeBool(numericValue(items[0]) > numericValue(items[1]))
}

// Logic -----------------------------------------------------------
//
// Spec.md §4.7: these are the naive variants -- they do not
// short-circuit and do not return the value of the last argument.

func primOr(in *Interpreter, args ValueRef) (ValueRef, error) {
	trueSym, err := in.MakeSymbol("#t")
	if err != nil {
		return Nil, err
	}
	for a := args; !a.IsNil(); a = a.Right() {
		if IsEqual(a.Left(), trueSym) {
			return in.MakeSymbol("#t")
		}
	}
	return in.MakeSymbol("#f")
}

func primAnd(in *Interpreter, args ValueRef) (ValueRef, error) {
	falseSym, err := in.MakeSymbol("#f")
	if err != nil {
		return Nil, err
	}
	for a := args; !a.IsNil(); a = a.Right() {
		if IsEqual(a.Left(), falseSym) {
			return in.MakeSymbol("#f")
		}
	}
	return in.MakeSymbol("#t")
}

func primNot(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(items[0].IsFalse())
}

// Numeric -----------------------------------------------------------

func primFloor(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v := items[0]
	if v.Kind() == KindInteger {
		return in.MakeInt(v.Int())
	}
	if v.Kind() == KindDecimal {
		return in.MakeInt(int64(math.Floor(v.Dec())))
	}
	return in.MakeError(ErrType, "floor: non-numeric argument")
}

func primCeiling(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v := items[0]
	if v.Kind() == KindInteger {
		return in.MakeInt(v.Int())
	}
	if v.Kind() == KindDecimal {
		return in.MakeInt(int64(math.Ceil(v.Dec())))
	}
	return in.MakeError(ErrType, "ceiling: non-numeric argument")
}

func primTrunc(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v := items[0]
	if v.Kind() == KindInteger {
		return in.MakeInt(v.Int())
	}
	if v.Kind() == KindDecimal {
		return in.MakeInt(int64(math.Trunc(v.Dec())))
	}
	return in.MakeError(ErrType, "truncate: non-numeric argument")
}

// primRound uses banker's rounding at exact halves.
func primRound(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v := items[0]
	if v.Kind() == KindInteger {
		return in.MakeInt(v.Int())
	}
	if v.Kind() != KindDecimal {
		return in.MakeError(ErrType, "round: non-numeric argument")
	}
	num := v.Dec()
	floorVal := math.Floor(num)
	frac := num - floorVal
	switch {
	case frac < 0.5:
		return in.MakeInt(int64(floorVal))
	case frac > 0.5:
		return in.MakeInt(int64(floorVal) + 1)
	default:
		intPart := int64(floorVal)
		if intPart%2 != 0 {
			return in.MakeInt(intPart + 1)
		}
		return in.MakeInt(intPart)
	}
}

// primMax/primMin seed from the first element rather than from zero,
// so (max -3 -1) correctly returns -1.
func primMax(in *Interpreter, args ValueRef) (ValueRef, error) {
	return in.extremum(args, "max", func(a, b float64) bool { return a > b })
}

func primMin(in *Interpreter, args ValueRef) (ValueRef, error) {
	return in.extremum(args, "min", func(a, b float64) bool { return a < b })
}

func (in *Interpreter) extremum(args ValueRef, name string, better func(a, b float64) bool) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if len(items) == 0 {
		return in.MakeError(ErrArity, name+": needs at least one argument")
	}
	if !isNumeric(items[0]) {
		return in.MakeError(ErrType, name+": non-numeric argument")
	}
	best := items[0]
	bestVal := numericValue(best)
	allInt := best.Kind() == KindInteger
	for _, it := range items[1:] {
		if !isNumeric(it) {
			return in.MakeError(ErrType, name+": non-numeric argument")
		}
		if it.Kind() != KindInteger {
			allInt = false
		}
		v := numericValue(it)
		if better(v, bestVal) {
			best = it
			bestVal = v
		}
	}
	return in.numericResult(bestVal, allInt)
}

// Identity ------------------------------------------------------------

func primEq(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(IsEqual(items[0], items[1]))
}

// List ------------------------------------------------------------

func primCar(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v, err := Car(items[0])
	return in.valueOrError(v, err)
}

func primCdr(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v, err := Cdr(items[0])
	return in.valueOrError(v, err)
}

func primCons(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.Cons(items[0], items[1])
}

// primList reconstructs its argument list as a fresh list. The
// original's prim_list recurses per-cons in C; here it is built
// iteratively since args is already a materialized Go slice -- same
// observable semantics, no unbounded Go call-stack growth on a long
// argument list.
func primList(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := ListToSlice(args)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.SliceToList(items)
}

func primSetCar(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if err := SetCar(items[0], items[1]); err != nil {
		return in.valueOrError(Nil, err)
	}
	return items[0], nil
}

func primSetCdr(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if err := SetCdr(items[0], items[1]); err != nil {
		return in.valueOrError(Nil, err)
	}
	return items[0], nil
}

// Type predicates ------------------------------------------------------

func primIsNum(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(isNumeric(items[0]))
}

func primIsInt(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(items[0].Kind() == KindInteger)
}

func primIsSym(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(items[0].Kind() == KindSymbol)
}

// primIsStr checks arity the same way as its type-predicate siblings
// before inspecting its argument.
func primIsStr(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(items[0].Kind() == KindString)
}

func primIsPair(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	return in.makeBool(items[0].Kind() == KindPair)
}

func primIsProc(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	v := items[0]
	return in.makeBool(v.Kind() == KindPrimitive || isClosure(v))
}

// Conversion ------------------------------------------------------

func primSymToStr(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if items[0].Kind() != KindSymbol {
		return in.MakeError(ErrType, "symbol->string: not a symbol")
	}
	return in.MakeString(items[0].Text())
}

func primStrToSym(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	if items[0].Kind() != KindString {
		return in.MakeError(ErrType, "string->symbol: not a string")
	}
	return in.MakeSymbol(items[0].Text())
}

// Config ------------------------------------------------------------
//
// set-config!/get-config return a descriptive symbol rather than a
// tagged Error value on misuse.

func primSetConfig(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 2)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	nameV, valueV := items[0], items[1]
	if nameV.Kind() != KindSymbol {
		return in.MakeSymbol("Config variable needs to be a symbol")
	}
	name := nameV.Text()
	if name == CfgBytesAllocated || !in.Config.Has(name) {
		return in.MakeSymbol("Unknown config variable")
	}
	if valueV.Kind() != KindInteger {
		return in.MakeSymbol("Config value needs to be an integer")
	}
	in.Config.SetInt(name, int(valueV.Int()))
	return in.MakeSymbol("ok")
}

func primGetConfig(in *Interpreter, args ValueRef) (ValueRef, error) {
	items, err := requireArity(args, 1)
	if err != nil {
		return in.valueOrError(Nil, err)
	}
	nameV := items[0]
	if nameV.Kind() != KindSymbol {
		return in.MakeSymbol("Config variable needs to be a symbol")
	}
	name := nameV.Text()
	if name == CfgBytesAllocated {
		return in.MakeInt(in.Heap.NBytesAllocated())
	}
	if !in.Config.Has(name) {
		return in.MakeSymbol("Unknown config variable")
	}
	return in.MakeInt(int64(in.Config.GetInt(name)))
}
