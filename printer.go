package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders v using standard Lisp syntax: pairs as "(a b . c)"
// only when improper, proper lists as "(a b c)", strings quoted,
// symbols bare, numbers in decimal.
func Print(v ValueRef) string {
	var sb strings.Builder
	printValue(&sb, v)
	return sb.String()
}

func printValue(sb *strings.Builder, v ValueRef) {
	switch v.Kind() {
	case KindEmpty:
		sb.WriteString("()")
	case KindInteger:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindDecimal:
		sb.WriteString(formatDecimal(v.Dec()))
	case KindSymbol:
		sb.WriteString(v.Text())
	case KindString:
		fmt.Fprintf(sb, "%q", v.Text())
	case KindPair:
		printPair(sb, v)
	case KindPrimitive:
		fmt.Fprintf(sb, "#<primitive %s>", v.PrimName())
	case KindError:
		fmt.Fprintf(sb, "#<error %s: %s>", v.ErrorKind(), v.ErrorMessage())
	default:
		sb.WriteString("#<unknown>")
	}
}

// printPair renders a Pair as a proper list "(a b c)" when every cdr
// chain bottoms out at the empty list, or as a dotted pair
// "(a b . c)" the moment it doesn't.
func printPair(sb *strings.Builder, v ValueRef) {
	sb.WriteByte('(')
	first := true
	for {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		printValue(sb, v.Left())

		rest := v.Right()
		if rest.IsNil() {
			break
		}
		if rest.IsPair() {
			v = rest
			continue
		}
		sb.WriteString(" . ")
		printValue(sb, rest)
		break
	}
	sb.WriteByte(')')
}

func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}
