package gapbuffer

// View is a read-only, single-shot, non-owning borrow over a GapBuffer's
// logical elements, laid out contiguously in memory. It is produced by
// AcquireView and must be released (View.Release) before the owning
// buffer is mutated again; every mutating GapBuffer method rejects its
// call with ErrViewOutstanding while a view is held.
//
// External collaborators — a regex matcher scanning Data(), an io.Writer
// flushing it to disk — are the intended consumers. The view becomes
// invalid the instant the buffer is mutated; do not retain Data() past
// Release.
type View[T Element] struct {
	buf  *GapBuffer[T]
	data []T
}

// AcquireView slides the buffer's gap to the end, so all logical elements
// occupy one contiguous run, and returns a borrow over that run. Call
// Release on the returned View before mutating the buffer again.
func (b *GapBuffer[T]) AcquireView() (*View[T], error) {
	if b.viewHeld {
		return nil, ErrViewOutstanding
	}
	b.moveGapTo(b.Len())
	b.viewHeld = true
	return &View[T]{buf: b, data: b.data[:b.Len()]}, nil
}

// Data returns the contiguous element run. The slice is only valid until
// Release is called.
func (v *View[T]) Data() []T {
	return v.data
}

// ItemSize reports the octet width of one element in the view.
func (v *View[T]) ItemSize() int {
	return v.buf.ItemSize()
}

// Release ends the borrow, re-enabling mutation of the owning buffer.
// Calling Release more than once is a no-op.
func (v *View[T]) Release() {
	if v.buf == nil {
		return
	}
	v.buf.viewHeld = false
	v.buf = nil
	v.data = nil
}
