package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExp_ConcreteScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic sum", "(+ 1 2 3)", "6"},
		{"exact division", "(/ 10 2)", "5"},
		{"inexact division", "(/ 10 4)", "2.5"},
		{"factorial", "(fact 5)", "120"},
		{
			"let and set!",
			"(let ((x 1)) (set! x (+ x 3)) x)",
			"4",
		},
		{
			"set-car! mutates a cons cell",
			"(let ((p (cons 1 2))) (set-car! p 9) p)",
			"(9 . 2)",
		},
		{
			"map squares a list",
			"(map square (list 1 2 3 4))",
			"(1 4 9 16)",
		},
		{"quote", "(quote (1 2 3))", "(1 2 3)"},
		{"quote shorthand", "'(a b)", "(a b)"},
		{"if true branch", "(if (> 2 1) 'yes 'no)", "yes"},
		{"if false branch", "(if (> 1 2) 'yes 'no)", "no"},
		{"cond", "(cond ((= 1 2) 'a) ((= 1 1) 'b) (else 'c))", "b"},
		{"lambda application", "((lambda (x y) (+ x y)) 3 4)", "7"},
		{"internal define (length)", "(length (list 1 2 3 4 5))", "5"},
		{"recursive closures (expt)", "(expt 2 10)", "1024"},
		{"modulo", "(modulo 7 3)", "1"},
		{"even?/odd?", "(list (even? 4) (odd? 4))", "(#t #f)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter(t)
			got, err := in.RunExp(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Print(got))
		})
	}
}

func TestRunExp_SqrtWithinTolerance(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := in.RunExp("(sqrt 2)")
	require.NoError(t, err)
	require.Equal(t, KindDecimal, got.Kind())
	assert.InDelta(t, 1.4142135623730951, got.Dec(), 1e-6)
}

func TestEval_LexicalScoping(t *testing.T) {
	in := newTestInterpreter(t)
	// A closure captures its defining environment, not its call site.
	src := `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(define n 1000)
		(add5 10)`
	got, err := in.RunExp(src)
	require.NoError(t, err)
	assert.Equal(t, "15", Print(got))
}

func TestEval_UnboundVariable_PropagatesAsValueNotAbort(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := in.RunExp("totally-undefined-name")
	require.NoError(t, err, "an unbound variable is a returned Error value, not an aborting Go error")
	assert.Equal(t, KindError, got.Kind())
	assert.Equal(t, ErrUnboundVariable, got.ErrorKind())
}

func TestEval_ArityError_PropagatesAsValue(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := in.RunExp("(cons 1)")
	require.NoError(t, err)
	assert.Equal(t, KindError, got.Kind())
	assert.Equal(t, ErrArity, got.ErrorKind())
}

func TestEval_DivisionByZero_PropagatesAsValue(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := in.RunExp("(/ 1 0)")
	require.NoError(t, err)
	assert.Equal(t, KindError, got.Kind())
	assert.Equal(t, ErrArithmetic, got.ErrorKind())
}

func TestEval_NotApplicable_PropagatesAsValue(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := in.RunExp("(1 2 3)")
	require.NoError(t, err)
	assert.Equal(t, KindError, got.Kind())
	assert.Equal(t, ErrNotApplicable, got.ErrorKind())
}

func TestApply_ArgumentsEvaluatedLeftToRight(t *testing.T) {
	in := newTestInterpreter(t)
	src := `
		(define trail '())
		(define (note tag val) (set! trail (cons tag trail)) val)
		(+ (note 'a 1) (note 'b 2))
		trail`
	got, err := in.RunExp(src)
	require.NoError(t, err)
	assert.Equal(t, "(b a)", Print(got), "each arg's side effect happened in order, most recent first")
}
