package editor_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhe/gapbuffer/editor"
)

func TestBufferWriteAndDelete(t *testing.T) {
	var b editor.Buffer

	n, err := b.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hello world", b.String())

	b.SetDot(0, 5)
	n, err = b.Delete()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, " world", b.String())
}

func TestBufferWriteReplacesDot(t *testing.T) {
	var b editor.Buffer
	b.Write([]byte("the quick fox"))

	b.SetDot(4, 9) // "quick"
	b.Write([]byte("slow"))

	assert.Equal(t, "the slow fox", b.String())
}

func TestBufferSeekAndReadRune(t *testing.T) {
	var b editor.Buffer
	b.Write([]byte("héllo")) // é is multi-byte

	b.Seek(0, io.SeekStart)
	r, size, err := b.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'h', r)
	assert.Equal(t, 1, size)

	r, size, err = b.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, size)
}

func TestBufferSelectWord(t *testing.T) {
	var b editor.Buffer
	b.Write([]byte("the quick brown fox"))

	b.Select(4) // inside "quick"
	assert.Equal(t, "quick", b.ReadDot())
}

func TestBufferNextPrevWord(t *testing.T) {
	var b editor.Buffer
	b.Write([]byte("alpha beta gamma"))

	n := b.NextWord(0)
	assert.Equal(t, len("alpha"), n)

	// "beta" spans byte range [6,10); probe from its last letter (index 9)
	// and reconstruct the span the way Select does, by combining
	// PrevWord and NextWord around the probe offset.
	const probe = 9
	start := probe - b.PrevWord(probe)
	end := probe + b.NextWord(probe)
	assert.Equal(t, "beta", b.String()[start:end])
}

func TestBufferNextPrevDelim(t *testing.T) {
	var b editor.Buffer
	b.Write([]byte("one,two,three"))

	n := b.NextDelim(',', 0)
	assert.Equal(t, len("one"), n)

	// PrevDelim counts inclusive of the delimiter it stops on, unlike
	// NextDelim which stops short of it.
	n = b.PrevDelim(',', len("one,two"))
	assert.Equal(t, len("two")+1, n)
}

func TestBufferReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(fn, []byte("initial content"), 0644))

	var b editor.Buffer
	b.NewFile(fn)
	require.NoError(t, b.ReadFile())
	assert.Equal(t, "initial content", b.String())
	assert.False(t, b.Dirty())

	b.SeekDot(0, io.SeekEnd)
	b.Write([]byte(" appended"))
	assert.True(t, b.Dirty())

	n, err := b.SaveFile()
	require.NoError(t, err)
	assert.Equal(t, len("initial content appended"), n)
	assert.False(t, b.Dirty())

	saved, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "initial content appended", string(saved))
}

func TestBufferReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	var b editor.Buffer
	b.NewFile(dir)
	require.NoError(t, b.ReadFile())
	assert.True(t, b.IsDir())
	assert.Contains(t, b.String(), "a.txt")
}

func TestBufferDestroy(t *testing.T) {
	var b editor.Buffer
	b.Write([]byte("gone soon"))
	b.Destroy()

	assert.Equal(t, 0, b.Len())
	q0, q1 := b.Dot()
	assert.Equal(t, 0, q0)
	assert.Equal(t, 0, q1)
}
