package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"add all integers stays integer", "(+ 1 2 3)", "6"},
		{"add with a decimal promotes", "(+ 1 2.5)", "3.5"},
		{"subtract unary negates", "(- 5)", "-5"},
		{"subtract chained", "(- 10 2 3)", "5"},
		{"multiply", "(* 2 3 4)", "24"},
		{"divide exact stays integer", "(/ 10 2)", "5"},
		{"divide inexact", "(/ 1 3)", "0.3333333333333333"},
		{"max seeds from first element", "(max 3 7 2)", "7"},
		{"min seeds from first element", "(min 3 7 2)", "2"},
		{"floor of decimal", "(floor 3.7)", "3"},
		{"ceiling of decimal", "(ceiling 3.2)", "4"},
		{"truncate toward zero", "(truncate -3.7)", "-3"},
		{"round half to even (down)", "(round 2.5)", "2"},
		{"round half to even (up)", "(round 3.5)", "4"},
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

func TestPrimitives_Comparison(t *testing.T) {
	in := newTestInterpreter(t)

	got, err := in.RunExp("(= 'not-a-number 1)")
	require.NoError(t, err, "= returns #f rather than erroring on non-numeric input")
	assert.Equal(t, "#f", Print(got))

	got, err = in.RunExp("(< 1 2)")
	require.NoError(t, err)
	assert.Equal(t, "#t", Print(got))
}

func TestPrimitives_Logic_DoesNotShortCircuit(t *testing.T) {
	in := newTestInterpreter(t)

	got, err := in.RunExp("(or #f #t #f)")
	require.NoError(t, err)
	assert.Equal(t, "#t", Print(got))

	got, err = in.RunExp("(and #t #t #f)")
	require.NoError(t, err)
	assert.Equal(t, "#f", Print(got))

	got, err = in.RunExp("(define hit 'no) (or #t (begin (set! hit 'yes) #f)) hit")
	require.NoError(t, err)
	assert.Equal(t, "yes", Print(got), "or evaluates every argument, even after a #t")
}

func TestPrimitives_TypePredicates(t *testing.T) {
	in := newTestInterpreter(t)

	tests := []struct {
		src  string
		want string
	}{
		{"(number? 1)", "#t"},
		{"(number? 'sym)", "#f"},
		{"(integer? 1)", "#t"},
		{"(integer? 1.5)", "#f"},
		{"(symbol? 'sym)", "#t"},
		{"(string? \"s\")", "#t"},
		{"(pair? (cons 1 2))", "#t"},
		{"(pair? '())", "#f"},
		{"(procedure? car)", "#t"},
		{"(procedure? 1)", "#f"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := in.RunExp(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Print(got))
		})
	}
}

// Calling string? with the wrong number of arguments must surface an
// ArityError value, not panic or read garbage.
func TestPrimitives_IsStr_ArityChecked(t *testing.T) {
	in := newTestInterpreter(t)
	got, err := in.RunExp(`(string? "a" "b")`)
	require.NoError(t, err)
	assert.Equal(t, KindError, got.Kind())
	assert.Equal(t, ErrArity, got.ErrorKind())
}

func TestPrimitives_Conversion(t *testing.T) {
	in := newTestInterpreter(t)

	got, err := in.RunExp(`(symbol->string 'abc)`)
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, Print(got))

	got, err = in.RunExp(`(string->symbol "xyz")`)
	require.NoError(t, err)
	assert.Equal(t, "xyz", Print(got))
}

func TestPrimitives_Config(t *testing.T) {
	in := newTestInterpreter(t)

	got, err := in.RunExp("(get-config 'thread_timeout)")
	require.NoError(t, err)
	assert.Equal(t, "5000", Print(got))

	_, err = in.RunExp("(set-config! 'thread_timeout 9000)")
	require.NoError(t, err)
	assert.Equal(t, 9000, in.Config.GetInt(CfgThreadTimeout))

	got, err = in.RunExp("(set-config! 'n_bytes_allocated 0)")
	require.NoError(t, err)
	assert.Equal(t, "Unknown config variable", Print(got), "n_bytes_allocated is read-only")

	got, err = in.RunExp("(get-config 'n_bytes_allocated)")
	require.NoError(t, err)
	assert.Equal(t, KindInteger, got.Kind())
}
