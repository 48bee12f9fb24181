// Package goroutineid extracts a best-effort identifier for the calling
// goroutine, for use as a diagnostic stand-in where a design calls for a
// per-worker thread identifier.
//
// Go goroutines are not bound to OS threads 1:1 and the runtime exposes
// no portable, cgo-free API for a kernel thread id. Current instead
// parses the goroutine id out of a self-targeted stack trace, the
// standard no-cgo technique for this; treat the result as a debugging
// aid, not a real OS thread id.
package goroutineid

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutinePrefix is the fixed text runtime.Stack emits before the
// numeric goroutine id on the first line of any trace.
var goroutinePrefix = []byte("goroutine ")

// Current returns the calling goroutine's id, or 0 if the stack trace
// could not be parsed (which should not happen on any supported Go
// runtime, but Current never panics regardless).
func Current() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parse(buf[:n])
}

func parse(trace []byte) uint64 {
	trace = bytes.TrimPrefix(trace, goroutinePrefix)

	sep := bytes.IndexByte(trace, ' ')
	if sep < 0 {
		return 0
	}

	id, err := strconv.ParseUint(string(trace[:sep]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
