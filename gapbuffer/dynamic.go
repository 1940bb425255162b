package gapbuffer

import "github.com/pkg/errors"

// Sequence is the kind-erased view of a GapBuffer, for callers that only
// know they hold "some gap buffer" and not its concrete element type —
// the "carry the tag in a single type and dispatch on it" alternative
// design from the Design Notes, used here only at the boundary where a
// caller's value genuinely isn't typed yet (see FromAny and friends
// below). Within a single instantiation, GapBuffer[T]'s own methods are
// already type-safe at compile time and never need this.
type Sequence interface {
	Kind() Kind
	Len() int
	// ElementAt returns the element at logical index i, widened to
	// int64. It is used by CompareAny and display.Render — prefer the
	// typed Get on a concrete GapBuffer[T].
	ElementAt(i int) (int64, error)
}

// ElementAt implements Sequence.
func (b *GapBuffer[T]) ElementAt(i int) (int64, error) {
	v, err := b.Get(i)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// WideString marks a Go string as a seed of wide code units rather than
// raw octets, disambiguating FromAny's two string-shaped cases by
// runtime type alone.
type WideString string

// FromAny constructs a GapBuffer, inferring its Kind from the dynamic
// type of seed. Supported seed types: nil, []byte, string (-> KindByte);
// []rune, WideString (-> KindWide); []int64, []int (-> KindInt).
func FromAny(seed interface{}) (Sequence, error) {
	switch v := seed.(type) {
	case nil:
		return NewByteBuffer(nil), nil
	case []byte:
		return NewByteBuffer(v), nil
	case string:
		return NewByteBuffer([]byte(v)), nil
	case WideString:
		return NewWideBuffer([]rune(string(v))), nil
	case []rune:
		return NewWideBuffer(v), nil
	case []int64:
		return NewIntBuffer(v), nil
	case []int:
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		return NewIntBuffer(out), nil
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "fromAny: unsupported seed type %T", seed)
	}
}

func coerceBytes(src interface{}) ([]byte, bool) {
	switch v := src.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case *GapBuffer[byte]:
		return v.Snapshot(), true
	default:
		return nil, false
	}
}

func coerceRunes(src interface{}) ([]rune, bool) {
	switch v := src.(type) {
	case []rune:
		return v, true
	case WideString:
		return []rune(string(v)), true
	case *GapBuffer[rune]:
		return v.Snapshot(), true
	default:
		return nil, false
	}
}

func coerceInts(src interface{}) ([]int64, bool) {
	switch v := src.(type) {
	case []int64:
		return v, true
	case []int:
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		return out, true
	case *GapBuffer[int64]:
		return v.Snapshot(), true
	default:
		return nil, false
	}
}

// SetSliceAny replaces s's logical range [a, c) with src, type-switching
// on s's concrete kind and rejecting a src whose shape doesn't match that
// kind with ErrTypeMismatch.
func SetSliceAny(s Sequence, a, c int, src interface{}) error {
	switch buf := s.(type) {
	case *GapBuffer[byte]:
		v, ok := coerceBytes(src)
		if !ok {
			return errors.Wrapf(ErrTypeMismatch, "setSlice: expected byte-kind source, got %T", src)
		}
		return buf.SetSlice(a, c, v)
	case *GapBuffer[rune]:
		v, ok := coerceRunes(src)
		if !ok {
			return errors.Wrapf(ErrTypeMismatch, "setSlice: expected wide-kind source, got %T", src)
		}
		return buf.SetSlice(a, c, v)
	case *GapBuffer[int64]:
		v, ok := coerceInts(src)
		if !ok {
			return errors.Wrapf(ErrTypeMismatch, "setSlice: expected int-kind source, got %T", src)
		}
		return buf.SetSlice(a, c, v)
	default:
		return errors.Wrap(ErrTypeMismatch, "setSlice: unrecognized sequence")
	}
}

// InsertAny inserts src before logical index p. Shorthand for
// SetSliceAny(s, p, p, src).
func InsertAny(s Sequence, p int, src interface{}) error {
	return SetSliceAny(s, p, p, src)
}

// ExtendAny appends src to the end of s. Shorthand for
// InsertAny(s, s.Len(), src).
func ExtendAny(s Sequence, src interface{}) error {
	return InsertAny(s, s.Len(), src)
}

// IncrementValue adds delta to every element of s in [start, end). s must
// be a KindInt buffer and delta must be an integer value, else
// ErrTypeMismatch.
func IncrementValue(s Sequence, start, end int, delta interface{}) error {
	buf, ok := s.(*GapBuffer[int64])
	if !ok {
		return errors.Wrap(ErrTypeMismatch, "increment: not an int-kind sequence")
	}
	var d int64
	switch v := delta.(type) {
	case int64:
		d = v
	case int:
		d = int64(v)
	case int32:
		d = int64(v)
	default:
		return errors.Wrapf(ErrTypeMismatch, "increment: expected an integer delta, got %T", delta)
	}
	return buf.Increment(start, end, d)
}

// ConcatAny concatenates a and b, which must share a concrete kind, else
// ErrTypeMismatch.
func ConcatAny(a, b Sequence) (Sequence, error) {
	switch av := a.(type) {
	case *GapBuffer[byte]:
		bv, ok := b.(*GapBuffer[byte])
		if !ok {
			return nil, errors.Wrap(ErrTypeMismatch, "concat: kind mismatch")
		}
		return av.Concat(bv), nil
	case *GapBuffer[rune]:
		bv, ok := b.(*GapBuffer[rune])
		if !ok {
			return nil, errors.Wrap(ErrTypeMismatch, "concat: kind mismatch")
		}
		return av.Concat(bv), nil
	case *GapBuffer[int64]:
		bv, ok := b.(*GapBuffer[int64])
		if !ok {
			return nil, errors.Wrap(ErrTypeMismatch, "concat: kind mismatch")
		}
		return av.Concat(bv), nil
	default:
		return nil, errors.Wrap(ErrTypeMismatch, "concat: unrecognized sequence")
	}
}

// CompareAny orders a and b. Differing kinds are ordered by their Kind
// tag; a nil Sequence is always ordered less than (and never equal to) a
// non-nil one.
func CompareAny(a, b Sequence) int {
	aNil, bNil := isNilSequence(a), isNilSequence(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}
	if a.Kind() != b.Kind() {
		if a.Kind() < b.Kind() {
			return -1
		}
		return 1
	}
	n, m := a.Len(), b.Len()
	for i := 0; i < n && i < m; i++ {
		av, _ := a.ElementAt(i)
		bv, _ := b.ElementAt(i)
		if av < bv {
			return -1
		}
		if av > bv {
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

// EqualAny reports whether a and b hold the same kind and content. A nil
// Sequence is never equal to anything, including another nil Sequence
// (mirrors comparing a buffer to the host's absence value).
func EqualAny(a, b Sequence) bool {
	if isNilSequence(a) || isNilSequence(b) {
		return false
	}
	return CompareAny(a, b) == 0
}

func isNilSequence(s Sequence) bool {
	if s == nil {
		return true
	}
	switch v := s.(type) {
	case *GapBuffer[byte]:
		return v == nil
	case *GapBuffer[rune]:
		return v == nil
	case *GapBuffer[int64]:
		return v == nil
	default:
		return false
	}
}
