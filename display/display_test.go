package display_test

import (
	"testing"

	"github.com/prodhe/gapbuffer/display"
	"github.com/prodhe/gapbuffer/gapbuffer"
)

func TestRenderAsymmetry(t *testing.T) {
	ints := gapbuffer.NewIntBuffer([]int64{1, 2, 3})
	if got, want := display.Render(ints), "GapBuffer('i') [1, 2, 3]"; got != want {
		t.Errorf("int kind: got %q, want %q", got, want)
	}

	bytes := gapbuffer.NewByteBuffer([]byte("abc"))
	if got, want := display.Render(bytes), "abc"; got != want {
		t.Errorf("byte kind: got %q, want %q", got, want)
	}

	wide := gapbuffer.NewWideBuffer([]rune("abc"))
	if got, want := display.Render(wide), "abc"; got != want {
		t.Errorf("wide kind: got %q, want %q", got, want)
	}
}

func TestRenderNil(t *testing.T) {
	if got, want := display.Render(nil), "<nil>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
