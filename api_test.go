package lisp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEnvironment_InstallsPrimitivesAndBootstrap(t *testing.T) {
	in := newTestInterpreter(t)

	_, err := Lookup("+", in.Globals)
	require.NoError(t, err, "+ must be bound by registerPrimitives")

	_, err = Lookup("map", in.Globals)
	require.NoError(t, err, "map must be bound by the bootstrap library")
}

func TestSetupEnvironment_SetsDefault(t *testing.T) {
	in, err := SetupEnvironment()
	require.NoError(t, err)
	defer in.Cleanup()

	assert.Same(t, in, Default)

	got, err := RunExp("(+ 1 1)")
	require.NoError(t, err)
	assert.Equal(t, "2", Print(got))
}

func TestMultipleInterpreters_AreIndependent(t *testing.T) {
	a := newTestInterpreter(t)
	b := newTestInterpreter(t)

	_, err := a.RunExp("(define only-in-a 1)")
	require.NoError(t, err)

	got, err := b.RunExp("only-in-a")
	require.NoError(t, err)
	assert.Equal(t, KindError, got.Kind(), "b's global environment must not see a's definitions")
}

func TestPrint_PairsAndAtoms(t *testing.T) {
	in := newTestInterpreter(t)

	tests := []struct {
		src  string
		want string
	}{
		{"5", "5"},
		{"3.5", "3.5"},
		{"'sym", "sym"},
		{`"a string"`, `"a string"`},
		{"'(1 2 3)", "(1 2 3)"},
		{"(cons 1 2)", "(1 . 2)"},
		{"'()", "()"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := in.RunExp(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Print(v))
		})
	}
}

func TestEvalWithTimeout_CompletesFastExpression(t *testing.T) {
	in := newTestInterpreter(t)
	expr := mustRead(t, in, "(+ 1 2)")

	got, err := in.EvalWithTimeout(expr, in.Globals, 1000)
	require.NoError(t, err)
	assert.Equal(t, "3", Print(got))
}

func TestEvalWithTimeout_CancelsRunawayRecursion(t *testing.T) {
	in := newTestInterpreter(t)
	// Every call allocates, so lift the hard limit: the recursion must
	// be stopped by the timer, not by an out-of-memory error.
	in.Config.SetInt(CfgMemLimHard, 1<<30)
	_, err := in.RunExp("(define (loop n) (loop (+ n 1)))")
	require.NoError(t, err)

	expr := mustRead(t, in, "(loop 0)")

	start := time.Now()
	_, err = in.EvalWithTimeout(expr, in.Globals, 50)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "timeout") || asEvalError(err).Kind == ErrTimeout)
	assert.Less(t, elapsed, 5*time.Second, "the caller must not block past the requested budget")
}

func mustRead(t *testing.T, in *Interpreter, src string) ValueRef {
	t.Helper()
	offset := 0
	v, err := in.ReadExp(src, &offset)
	require.NoError(t, err)
	return v
}
