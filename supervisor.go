package lisp

import "time"

// Supervised evaluation. EvalWithTimeout schedules eval as a
// cancellable task; if wall-clock elapsed time exceeds the requested
// timeout, the task is cancelled and the caller receives a Timeout
// error. Cancellation is cooperative: the evaluator (evaluator.go's
// cancelFlag) checks a flag between sub-evaluations and between
// cond/begin steps, never pre-empting mid-primitive.
//
// Only one goroutine ever mutates the heap at a time: EvalWithTimeout
// blocks until the worker goroutine has actually returned (even after
// signalling cancellation), so the caller never regains control while
// the worker might still be touching the heap.
type evalResult struct {
	value ValueRef
	err   error
}

// EvalWithTimeout runs Eval(expr, env) with a wall-clock budget of ms
// milliseconds. If the budget is exceeded, it returns a Timeout
// EvalError once the cancelled worker goroutine actually exits.
func (in *Interpreter) EvalWithTimeout(expr, env ValueRef, ms int) (ValueRef, error) {
	cancel := &cancelFlag{}
	done := make(chan evalResult, 1)

	go func() {
		v, err := in.eval(expr, env, cancel)
		done <- evalResult{value: v, err: err}
	}()

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.value, r.err
	case <-timer.C:
		cancel.cancelled.Store(true)
		<-done // wait for the worker to observe cancellation and stop touching the heap
		return Nil, newEvalError(ErrTimeout, "evaluation exceeded %dms", ms)
	}
}

// EvalWithConfiguredTimeout runs expr against env using the configured
// thread_timeout setting.
func (in *Interpreter) EvalWithConfiguredTimeout(expr, env ValueRef) (ValueRef, error) {
	return in.EvalWithTimeout(expr, env, in.Config.GetInt(CfgThreadTimeout))
}

// EvalWithTimeout evaluates expr in env against the Default
// interpreter with an explicit millisecond budget.
func EvalWithTimeout(expr, env ValueRef, ms int) (ValueRef, error) {
	return Default.EvalWithTimeout(expr, env, ms)
}
