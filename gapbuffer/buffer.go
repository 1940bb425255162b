// Package gapbuffer implements a gap buffer: a mutable, indexable,
// sliceable sequence tuned for the workload of a text editor, where most
// edits are local to a moving cursor. A contiguous run of unused slots
// (the gap) migrates to the site of the next edit, so runs of nearby
// edits cost O(edit size) rather than O(buffer size).
//
// Three element kinds are supported: KindByte (octets), KindWide (wide,
// host-native code units) and KindInt (fixed-width integers), realised as
// three instantiations of the generic GapBuffer[T] — GapBuffer[byte],
// GapBuffer[rune] and GapBuffer[int64].
package gapbuffer

import (
	"strconv"

	"github.com/pkg/errors"
)

// minGrow is the smallest growth quantum used by ensureGap.
const minGrow = 16

// maxGrow caps the doubling growSize so repeated large appends do not
// over-allocate without bound.
const maxGrow = 1 << 20

// Element is the set of Go types a GapBuffer can hold. The three
// constraint terms correspond 1:1 with Kind's three values.
type Element interface {
	~uint8 | ~int32 | ~int64
}

// GapBuffer is the core sequence container. The zero value is not usable;
// construct one with NewByteBuffer, NewWideBuffer or NewIntBuffer.
type GapBuffer[T Element] struct {
	kind     Kind
	data     []T
	part1Len int // logical elements before the gap
	gapLen   int // unused slots in the gap
	growSize int // next allocation quantum, doubles with use
	viewHeld bool
}

func newBuffer[T Element](kind Kind, seed []T) *GapBuffer[T] {
	b := &GapBuffer[T]{
		kind:     kind,
		growSize: minGrow,
	}
	if len(seed) > 0 {
		b.data = make([]T, len(seed))
		copy(b.data, seed)
		b.part1Len = len(seed)
	}
	return b
}

// NewByteBuffer constructs a GapBuffer of kind KindByte from a seed of
// octets. The seed may be nil or empty.
func NewByteBuffer(seed []byte) *GapBuffer[byte] {
	return newBuffer[byte](KindByte, seed)
}

// NewWideBuffer constructs a GapBuffer of kind KindWide from a seed of
// wide code units (Go runes). The seed may be nil or empty.
func NewWideBuffer(seed []rune) *GapBuffer[rune] {
	return newBuffer[rune](KindWide, seed)
}

// NewIntBuffer constructs a GapBuffer of kind KindInt from a seed of
// fixed-width integers. The seed may be nil or empty.
func NewIntBuffer(seed []int64) *GapBuffer[int64] {
	return newBuffer[int64](KindInt, seed)
}

// Kind reports the element variant fixed at construction.
func (b *GapBuffer[T]) Kind() Kind { return b.kind }

// ItemSize reports the octet width of one element.
func (b *GapBuffer[T]) ItemSize() int { return b.kind.itemSize() }

// Len returns the number of logical elements.
func (b *GapBuffer[T]) Len() int {
	return len(b.data) - b.gapLen
}

// Cap returns the total number of element slots allocated, including the
// gap.
func (b *GapBuffer[T]) Cap() int {
	return len(b.data)
}

// physOff maps a logical index to its physical offset in data. i must
// already be known to be in [0, Len()).
func (b *GapBuffer[T]) physOff(i int) int {
	if i >= b.part1Len {
		return i + b.gapLen
	}
	return i
}

// Get returns the element at logical index i.
func (b *GapBuffer[T]) Get(i int) (T, error) {
	var zero T
	n := b.Len()
	if i < 0 || i >= n {
		return zero, errors.Wrapf(ErrOutOfRange, "get(%d): length %d", i, n)
	}
	return b.data[b.physOff(i)], nil
}

// Set writes a single element at logical index i in place. It does not
// move the gap.
func (b *GapBuffer[T]) Set(i int, v T) error {
	n := b.Len()
	if i < 0 || i >= n {
		return errors.Wrapf(ErrOutOfRange, "set(%d): length %d", i, n)
	}
	if b.viewHeld {
		return ErrViewOutstanding
	}
	b.data[b.physOff(i)] = v
	return nil
}

// GetSlice returns a newly allocated GapBuffer holding logical elements
// [a, c). The returned buffer shares no storage with b.
func (b *GapBuffer[T]) GetSlice(a, c int) (*GapBuffer[T], error) {
	n := b.Len()
	if a < 0 || c < a || c > n {
		return nil, errors.Wrapf(ErrOutOfRange, "getSlice(%d,%d): length %d", a, c, n)
	}
	out := make([]T, c-a)
	for i := a; i < c; i++ {
		out[i-a] = b.data[b.physOff(i)]
	}
	return newBuffer[T](b.kind, out), nil
}

// moveGapTo relocates the gap so that part1Len == p, shifting only the
// elements that lie between the gap's current position and p.
func (b *GapBuffer[T]) moveGapTo(p int) {
	if p == b.part1Len {
		return
	}
	if p < b.part1Len {
		n := b.part1Len - p
		copy(b.data[p+b.gapLen:p+b.gapLen+n], b.data[p:p+n])
	} else {
		n := p - b.part1Len
		copy(b.data[b.part1Len:b.part1Len+n], b.data[b.part1Len+b.gapLen:b.part1Len+b.gapLen+n])
	}
	b.part1Len = p
}

// growGap reallocates so the gap has at least extra additional slots,
// beyond a growSize quantum, then doubles growSize for amortised O(1)
// repeated appends.
func (b *GapBuffer[T]) growGap(extra int) {
	total := b.Len()
	part2Len := total - b.part1Len
	add := extra + b.growSize
	newSize := len(b.data) + add

	nd := make([]T, newSize)
	copy(nd[:b.part1Len], b.data[:b.part1Len])
	copy(nd[newSize-part2Len:], b.data[b.part1Len+b.gapLen:b.part1Len+b.gapLen+part2Len])
	b.data = nd
	b.gapLen = newSize - total

	b.growSize *= 2
	if b.growSize > maxGrow {
		b.growSize = maxGrow
	}
}

// SetSlice replaces logical range [a, c) with src, covering insertion
// (a == c), replacement (len(src) == c-a) and deletion (len(src) == 0)
// uniformly.
func (b *GapBuffer[T]) SetSlice(a, c int, src []T) error {
	n := b.Len()
	if a < 0 || c < a || c > n {
		return errors.Wrapf(ErrOutOfRange, "setSlice(%d,%d): length %d", a, c, n)
	}
	if b.viewHeld {
		return ErrViewOutstanding
	}
	oldLen := c - a
	newLen := len(src)

	b.moveGapTo(a)
	if newLen > oldLen+b.gapLen {
		b.growGap((newLen - oldLen) - b.gapLen)
	}
	copy(b.data[a:a+newLen], src)
	b.part1Len = a + newLen
	b.gapLen += oldLen - newLen
	return nil
}

// DelSlice deletes logical range [a, c). Shorthand for SetSlice(a, c, nil).
func (b *GapBuffer[T]) DelSlice(a, c int) error {
	return b.SetSlice(a, c, nil)
}

// Insert inserts src before logical index p. Shorthand for
// SetSlice(p, p, src).
func (b *GapBuffer[T]) Insert(p int, src []T) error {
	return b.SetSlice(p, p, src)
}

// Extend appends src to the end of the buffer. Shorthand for
// Insert(Len(), src).
func (b *GapBuffer[T]) Extend(src []T) error {
	return b.Insert(b.Len(), src)
}

// Clear empties the buffer, retaining its allocation.
func (b *GapBuffer[T]) Clear() error {
	return b.SetSlice(0, b.Len(), nil)
}

// Increment adds delta to every element in [start, end), in place,
// without moving the gap. Valid only for KindInt buffers; any other kind
// fails with ErrTypeMismatch.
func (b *GapBuffer[T]) Increment(start, end int, delta T) error {
	if b.kind != KindInt {
		return errors.Wrap(ErrTypeMismatch, "increment: not an int buffer")
	}
	n := b.Len()
	if start < 0 || end < start || end > n {
		return errors.Wrapf(ErrOutOfRange, "increment(%d,%d): length %d", start, end, n)
	}
	if b.viewHeld {
		return ErrViewOutstanding
	}
	for i := start; i < end; i++ {
		off := b.physOff(i)
		b.data[off] += delta
	}
	return nil
}

// Concat returns a new buffer holding b's elements followed by other's.
// Neither operand is modified or shares storage with the result.
func (b *GapBuffer[T]) Concat(other *GapBuffer[T]) *GapBuffer[T] {
	bs := b.Snapshot()
	os := other.Snapshot()
	out := make([]T, 0, len(bs)+len(os))
	out = append(out, bs...)
	out = append(out, os...)
	return newBuffer[T](b.kind, out)
}

// Repeat returns a new buffer holding n concatenations of b. n <= 0
// yields an empty buffer; n == 1 yields a copy.
func (b *GapBuffer[T]) Repeat(n int) *GapBuffer[T] {
	if n <= 0 {
		return newBuffer[T](b.kind, nil)
	}
	snap := b.Snapshot()
	out := make([]T, 0, len(snap)*n)
	for i := 0; i < n; i++ {
		out = append(out, snap...)
	}
	return newBuffer[T](b.kind, out)
}

// Compare performs a lexicographic comparison against other, element by
// element, with a shorter prefix ordering before a longer one. It
// returns a negative number, zero or a positive number the way
// strings.Compare does.
func (b *GapBuffer[T]) Compare(other *GapBuffer[T]) int {
	if other == nil {
		return 1
	}
	n, m := b.Len(), other.Len()
	for i := 0; i < n && i < m; i++ {
		bi := b.data[b.physOff(i)]
		oi := other.data[other.physOff(i)]
		if bi < oi {
			return -1
		}
		if bi > oi {
			return 1
		}
	}
	switch {
	case n < m:
		return -1
	case n > m:
		return 1
	default:
		return 0
	}
}

// Equal reports whether b and other hold the same logical content.
func (b *GapBuffer[T]) Equal(other *GapBuffer[T]) bool {
	return other != nil && b.Compare(other) == 0
}

// Slim shrinks the allocation to exactly fit the logical content,
// eliminating the gap, and resets growSize to its minimum. It fails with
// ErrViewOutstanding while a view is held, since it reallocates b.data
// and would otherwise strand View.Data() pointing at the old array.
func (b *GapBuffer[T]) Slim() error {
	if b.viewHeld {
		return ErrViewOutstanding
	}
	if b.gapLen == 0 {
		b.growSize = minGrow
		return nil
	}
	n := b.Len()
	nd := make([]T, n)
	copy(nd[:b.part1Len], b.data[:b.part1Len])
	copy(nd[b.part1Len:], b.data[b.part1Len+b.gapLen:])
	b.data = nd
	b.gapLen = 0
	b.growSize = minGrow
	return nil
}

// Snapshot returns an owned copy of the buffer's logical content. Unlike
// AcquireView, the returned slice is independent of the buffer and safe
// to retain across mutations.
func (b *GapBuffer[T]) Snapshot() []T {
	n := b.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = b.data[b.physOff(i)]
	}
	return out
}

// String renders the buffer's natural textual form: the raw string for
// KindByte/KindWide, or a plain element list for KindInt. The
// GapBuffer('i') [...] tagged rendering lives in the display package, not
// here — see display.Render.
func (b *GapBuffer[T]) String() string {
	switch b.kind {
	case KindByte:
		snap := b.Snapshot()
		bs := make([]byte, len(snap))
		for i, v := range snap {
			bs[i] = byte(v)
		}
		return string(bs)
	case KindWide:
		snap := b.Snapshot()
		rs := make([]rune, len(snap))
		for i, v := range snap {
			rs[i] = rune(v)
		}
		return string(rs)
	default:
		snap := b.Snapshot()
		out := "["
		for i, v := range snap {
			if i > 0 {
				out += " "
			}
			out += strconv.FormatInt(int64(v), 10)
		}
		return out + "]"
	}
}
