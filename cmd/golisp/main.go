// Command golisp runs a source file through the interpreter one
// top-level expression at a time. It is deliberately thin: line
// assembly, paren-balance prompting, and banner printing are an
// interactive prompt's job, not this driver's.
package main

import (
	"flag"
	"log"
	"os"

	lisp "github.com/PurHur/libisp"
)

func main() {
	var (
		sourcePath = flag.String("source", "", "Path to a Lisp source file")
		timeoutMs  = flag.Int("timeout", 0, "Per-expression timeout in ms (0 uses thread_timeout)")
		verbosity  = flag.String("verbosity", "", "Heap verbosity: SILENT, NORMAL, or VERBOSE")
	)
	flag.Parse()

	if *sourcePath == "" {
		log.Fatal("source file not informed")
	}

	source, err := os.ReadFile(*sourcePath)
	if err != nil {
		log.Fatalf("can't read source file: %s", err.Error())
	}

	in, err := lisp.SetupEnvironment()
	if err != nil {
		log.Fatalf("can't set up environment: %s", err.Error())
	}
	defer in.Cleanup()

	if v, ok := verbosityFromFlag(*verbosity); ok {
		in.Config.SetInt(lisp.CfgMemVerbosity, int(v))
	}

	offset := 0
	text := string(source)
	for hasRemainingInput(text, offset) {
		expr, err := in.ReadExp(text, &offset)
		if err != nil {
			log.Fatalf("read error: %s", err.Error())
		}

		var result lisp.ValueRef
		if *timeoutMs > 0 {
			result, err = in.EvalWithTimeout(expr, in.Globals, *timeoutMs)
		} else {
			result, err = in.EvalWithConfiguredTimeout(expr, in.Globals)
		}
		if err != nil {
			log.Fatalf("eval error: %s", err.Error())
		}
		log.Println(lisp.Print(result))
	}
}

func hasRemainingInput(text string, offset int) bool {
	for _, c := range text[offset:] {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		return true
	}
	return false
}

func verbosityFromFlag(s string) (lisp.Verbosity, bool) {
	switch s {
	case "SILENT":
		return lisp.Silent, true
	case "NORMAL":
		return lisp.Normal, true
	case "VERBOSE":
		return lisp.Verbose, true
	default:
		return lisp.Normal, false
	}
}
