package lisp

import (
	"fmt"
	"log"
	"runtime"
)

// Verbosity controls how chatty the allocator and collector are.
type Verbosity int

const (
	Silent Verbosity = iota
	Normal
	Verbose
)

func (v Verbosity) String() string {
	switch v {
	case Silent:
		return "SILENT"
	case Normal:
		return "NORMAL"
	case Verbose:
		return "VERBOSE"
	default:
		return "UNKNOWN"
	}
}

// allocEntry is one node in the heap's global allocation list. The
// list is the only structure GC sweeps; cells are never freed except
// by tracing through it.
type allocEntry struct {
	value *Value
	next  *allocEntry
	prev  *allocEntry
}

// Heap is the process-wide (per-Interpreter) arena backing every
// Value. It tracks live byte usage against the soft/hard thresholds
// carried in Config and, at Verbose, traces each allocation's call
// site through log.Printf.
type Heap struct {
	head  *allocEntry
	tail  *allocEntry
	count int

	nBytesAllocated int64
	logger          *log.Logger
}

func newHeap(logger *log.Logger) *Heap {
	if logger == nil {
		logger = log.Default()
	}
	return &Heap{logger: logger}
}

// NBytesAllocated is the live byte total, the n_bytes_allocated
// invariant.
func (h *Heap) NBytesAllocated() int64 { return h.nBytesAllocated }

// Count returns how many live cells are currently in the allocation
// list.
func (h *Heap) Count() int { return h.count }

// alloc links a zeroed cell into the allocation list, failing with
// ErrOutOfMemory if doing so would push past hardLimit. softLimit is
// not consulted here: RunGC(GCLowMem) runs between top-level
// expressions (see RunExp), not before each allocation.
func (h *Heap) alloc(kind ValueKind, text string, verbosity Verbosity, hardLimit int64) (*Value, error) {
	size := cellSize(text)
	if h.nBytesAllocated+int64(size) > hardLimit {
		if verbosity >= Normal {
			h.logger.Printf("gc: allocation of %d bytes refused, hard limit %d reached", size, hardLimit)
		}
		return nil, &EvalError{Kind: ErrOutOfMemory, Message: "allocation exceeds mem_lim_hard"}
	}

	v := &Value{kind: kind, text: text, size: size}
	entry := &allocEntry{value: v}

	if h.tail == nil {
		h.head = entry
		h.tail = entry
	} else {
		entry.prev = h.tail
		h.tail.next = entry
		h.tail = entry
	}
	h.count++
	h.nBytesAllocated += int64(size)

	if verbosity >= Verbose {
		_, file, line, ok := runtime.Caller(2)
		if !ok {
			file, line = "?", 0
		}
		h.logger.Printf("alloc: %s:%d size=%d kind=%v total=%d", file, line, size, kind, h.nBytesAllocated)
	}
	return v, nil
}

// free unlinks entry from the allocation list and subtracts its size
// from the byte total. Used only by the garbage collector's sweep
// phase.
func (h *Heap) free(e *allocEntry, verbosity Verbosity) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		h.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		h.tail = e.prev
	}
	h.count--
	h.nBytesAllocated -= int64(e.value.size)

	if verbosity >= Verbose {
		h.logger.Printf("free: size=%d kind=%v total=%d", e.value.size, e.value.kind, h.nBytesAllocated)
	}
}

// reset clears every cell from the allocation list without tracing
// through roots; used by Cleanup.
func (h *Heap) reset() {
	h.head = nil
	h.tail = nil
	h.count = 0
	h.nBytesAllocated = 0
}

func fmtBytes(n int64) string {
	return fmt.Sprintf("%d bytes", n)
}
