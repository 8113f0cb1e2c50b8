package sclisp

import (
	"bufio"
	"io"
	"os"
	"sync/atomic"
)

// Stream identifiers for Callbacks.Print, per §6.
const (
	StreamStdout = 1
	StreamStderr = 2
)

// Callbacks is the host-supplied table every allocation, final
// release, and unit of I/O or interactive input flows through (§2). Alloc and ZAlloc hand back the backing buffer an object's
// construction is charged against; Free takes the same buffer back.
// ZAlloc, GetChar are optional: a nil ZAlloc is shimmed as Alloc
// followed by a zero-fill, and a nil GetChar makes prompt fail with
// CodeUnsupported. Alloc, Free and Print are mandatory.
type Callbacks struct {
	Alloc   func(size int) []byte
	ZAlloc  func(size int) []byte
	Free    func(buf []byte)
	Print   func(stream int, data []byte)
	GetChar func() (b byte, ok bool)
}

func (cb *Callbacks) validate() error {
	if cb.Alloc == nil || cb.Free == nil || cb.Print == nil {
		return newError(CodeBadArg, "callback table missing a mandatory entry (alloc, free or print)")
	}
	return nil
}

func (cb *Callbacks) zalloc(size int) []byte {
	if cb.ZAlloc != nil {
		return cb.ZAlloc(size)
	}
	buf := cb.Alloc(size)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// AllocCounters tracks outstanding allocations made through a
// Callbacks table built by DefaultCallbacks, so a test harness (or an
// embedder) can assert that every Alloc is eventually matched by a
// Free — the "allocation count equals free count at destroy" property
// from §8.
type AllocCounters struct {
	allocs int64
	frees  int64
}

func (c *AllocCounters) Allocs() int64 { return atomic.LoadInt64(&c.allocs) }
func (c *AllocCounters) Frees() int64  { return atomic.LoadInt64(&c.frees) }
func (c *AllocCounters) Balanced() bool {
	return c.Allocs() == c.Frees()
}

// DefaultCallbacks wraps the platform standard library: Go's own
// allocator backs Alloc/ZAlloc/Free (object memory is still garbage
// collected — see DESIGN.md on refcounting-over-GC — the counters
// exist purely so the host-visible alloc/free protocol stays
// checkable), stdout/stderr back Print by stream id, and a buffered
// stdin reader backs GetChar.
func DefaultCallbacks() (*Callbacks, *AllocCounters) {
	return newDefaultCallbacks(os.Stdout, os.Stderr, os.Stdin)
}

// DefaultCallbacksWithIO is DefaultCallbacks but lets a test or an
// embedding CLI substitute the underlying streams.
func DefaultCallbacksWithIO(stdout, stderr io.Writer, stdin io.Reader) (*Callbacks, *AllocCounters) {
	return newDefaultCallbacks(stdout, stderr, stdin)
}

func newDefaultCallbacks(stdout, stderr io.Writer, stdin io.Reader) (*Callbacks, *AllocCounters) {
	counters := &AllocCounters{}
	in := bufio.NewReader(stdin)

	cb := &Callbacks{
		Alloc: func(size int) []byte {
			atomic.AddInt64(&counters.allocs, 1)
			if size <= 0 {
				return nil
			}
			return make([]byte, size)
		},
		Free: func(buf []byte) {
			atomic.AddInt64(&counters.frees, 1)
		},
		Print: func(stream int, data []byte) {
			switch stream {
			case StreamStderr:
				_, _ = stderr.Write(data)
			default:
				_, _ = stdout.Write(data)
			}
		},
		GetChar: func() (byte, bool) {
			b, err := in.ReadByte()
			if err != nil {
				return 0, false
			}
			return b, true
		},
	}
	return cb, counters
}
