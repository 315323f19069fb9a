// Package ident produces opaque, process-unique identifiers for hooks,
// handlers, and client hooks.
package ident

import (
	"strconv"
	"sync/atomic"
)

// counter is the source of unique IDs for all hook, handler, and
// client-hook identifiers in a process. Atomic increment gives a
// monotonic, collision-free sequence without a lock.
var counter uint64

// ID is an opaque, stringifiable, process-unique identifier.
type ID string

// New returns the next unique ID.
func New() ID {
	n := atomic.AddUint64(&counter, 1)
	return ID(strconv.FormatUint(n, 36))
}

// String implements fmt.Stringer.
func (i ID) String() string {
	return string(i)
}
