// Package display renders a gapbuffer.Sequence as text for a terminal or
// log line. It exists so the core gapbuffer package can stay uniform
// across kinds — the asymmetric rendering of KindInt buffers
// (GapBuffer('i') [e0, e1, ...]) versus the natural string of
// KindByte/KindWide buffers lives here, at the host-adapter boundary.
package display

import (
	"strconv"
	"strings"

	"github.com/prodhe/gapbuffer/gapbuffer"
)

// Render returns the textual form of s: the natural string for
// KindByte/KindWide, or "GapBuffer('i') [e0, e1, ...]" for KindInt.
func Render(s gapbuffer.Sequence) string {
	if s == nil {
		return "<nil>"
	}
	if s.Kind() != gapbuffer.KindInt {
		if str, ok := s.(interface{ String() string }); ok {
			return str.String()
		}
	}

	n := s.Len()
	elems := make([]string, n)
	for i := 0; i < n; i++ {
		v, err := s.ElementAt(i)
		if err != nil {
			elems[i] = "?"
			continue
		}
		elems[i] = strconv.FormatInt(v, 10)
	}
	return "GapBuffer('" + s.Kind().String() + "') [" + strings.Join(elems, ", ") + "]"
}
