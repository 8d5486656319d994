package lisp

// bootstrapLibrary is the fixed ordered list of source expressions
// evaluated once against the global environment at setup. Every one
// of these is pure composition of already-registered primitives or
// earlier bootstrap definitions.
var bootstrapLibrary = []string{
	"(define (caar pair) (car (car pair)))",
	"(define (cadr pair) (car (cdr pair)))",
	"(define (cdar pair) (cdr (car pair)))",
	"(define (cddr pair) (cdr (cdr pair)))",

	"(define (caaar pair) (car (car (car pair))))",
	"(define (caadr pair) (car (car (cdr pair))))",
	"(define (cadar pair) (car (cdr (car pair))))",
	"(define (caddr pair) (car (cdr (cdr pair))))",
	"(define (cdaar pair) (cdr (car (car pair))))",
	"(define (cdadr pair) (cdr (car (cdr pair))))",
	"(define (cddar pair) (cdr (cdr (car pair))))",
	"(define (cdddr pair) (cdr (cdr (cdr pair))))",

	"(define (caaaar pair) (car (car (car (car pair)))))",
	"(define (caaadr pair) (car (car (car (cdr pair)))))",
	"(define (caadar pair) (car (car (cdr (car pair)))))",
	"(define (caaddr pair) (car (car (cdr (cdr pair)))))",
	"(define (cadaar pair) (car (cdr (car (car pair)))))",
	"(define (cadadr pair) (car (cdr (car (cdr pair)))))",
	"(define (caddar pair) (car (cdr (cdr (car pair)))))",
	"(define (cadddr pair) (car (cdr (cdr (cdr pair)))))",
	"(define (cdaaar pair) (cdr (car (car (car pair)))))",
	"(define (cdaadr pair) (cdr (car (car (cdr pair)))))",
	"(define (cdadar pair) (cdr (car (cdr (car pair)))))",
	"(define (cdaddr pair) (cdr (car (cdr (cdr pair)))))",
	"(define (cddaar pair) (cdr (cdr (car (car pair)))))",
	"(define (cddadr pair) (cdr (cdr (car (cdr pair)))))",
	"(define (cdddar pair) (cdr (cdr (cdr (car pair)))))",
	"(define (cddddr pair) (cdr (cdr (cdr (cdr pair)))))",

	"(define nil '())",
	"(define (zero? exp) (= 0 exp))",
	"(define (null? exp) (eq? exp nil))",
	"(define (negative? exp) (< exp 0))",
	"(define (positive? exp) (> exp 0))",
	"(define (boolean? exp) (or (eq? exp '#t) (eq? exp '#f)))",
	"(define (abs n) (if (negative? n) (- 0 n) n))",
	"(define (<= a b) (not (> a b)))",
	"(define (>= a b) (not (< a b)))",
	"(define (map proc items) (if (null? items) nil (cons (proc (car items)) (map proc (cdr items)))))",
	"(define (fact n) (if (= n 1) 1 (* n (fact (- n 1)))))",
	"(define (delay proc) (lambda () proc))",
	"(define (force proc) (proc))",
	"(define (length list) (define (list-loop part count) (if (null? part) count (list-loop (cdr part) (+ count 1)))) (list-loop list 0))",
	"(define (modulo num div) (- num (* (floor (/ num div)) div)))",
	"(define (quotient num div) (truncate (/ num div)))",
	"(define (remainder num div) (+ (* (quotient num div) div -1) num))",
	"(define (gcd a b) (cond ((= a 0) b) ((= b 0) a) ((> a b) (gcd (modulo a b) b)) (else (gcd a (modulo b a)))))",
	"(define (lcm a b) (/ (* a b) (gcd a b)))",
	"(define (odd? n) (if (= 1 (modulo n 2)) '#t '#f))",
	"(define (even? n) (not (odd? n)))",
	"(define (square n) (* n n))",
	"(define (average a b) (/ (+ a b) 2))",
	"(define (sqrt x) (define (good-enough? guess) (< (abs (- (square guess) x)) 0.000001)) (define (improve guess) (average guess (/ x guess))) (define (sqrt-iter guess) (if (good-enough? guess) (abs guess) (sqrt-iter (improve guess)))) (sqrt-iter 1.0))",
	"(define (expt base ex) (if (= 0 ex) 1 (* base (expt base (- ex 1)))))",
}

// runBootstrap evaluates bootstrapLibrary in order against env. A
// single GC FORCE afterward drops reader garbage.
func (in *Interpreter) runBootstrap(env ValueRef) error {
	for _, src := range bootstrapLibrary {
		if _, err := in.runExpIn(src, env); err != nil {
			return err
		}
	}
	in.RunGC(GCForce)
	return nil
}
