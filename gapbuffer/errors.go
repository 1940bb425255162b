package gapbuffer

import "github.com/pkg/errors"

// Sentinel errors for the three failure kinds of a GapBuffer operation
// (of which ErrAllocation is never returned, see below), plus the dynamic
// view-borrow contract violation. Every failing
// operation leaves the buffer unchanged; none of these are retried
// internally.
var (
	// ErrOutOfRange is returned when an index or slice bound falls outside
	// the permitted interval.
	ErrOutOfRange = errors.New("gapbuffer: index out of range")

	// ErrTypeMismatch is returned when a foreign sequence or value's kind
	// differs from the target buffer's kind, or Increment is attempted on
	// a non-Int buffer.
	ErrTypeMismatch = errors.New("gapbuffer: type mismatch")

	// ErrAllocation names the allocation-failure kind. No operation in this
	// package returns it: growth allocates with make, which does not report
	// a failed allocation as an error.
	ErrAllocation = errors.New("gapbuffer: allocation failed")

	// ErrViewOutstanding is returned by any mutating operation while a
	// View acquired from this buffer has not yet been released.
	ErrViewOutstanding = errors.New("gapbuffer: view outstanding")
)
