package editor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhe/gapbuffer/editor"
)

func TestEditorNewBuffer(t *testing.T) {
	e := editor.New()
	assert.Equal(t, 0, e.Len())

	id, buf := e.NewBuffer()
	require.NotNil(t, buf)
	assert.Equal(t, 1, e.Len())
	assert.Same(t, buf, e.Buffer(id))
}

func TestEditorBuffersAndClose(t *testing.T) {
	e := editor.New()
	id1, _ := e.NewBuffer()
	id2, _ := e.NewBuffer()
	assert.Equal(t, 2, e.Len())

	ids, bufs := e.Buffers()
	assert.Len(t, ids, 2)
	assert.Len(t, bufs, 2)

	e.CloseBuffer(id1)
	assert.Equal(t, 1, e.Len())
	assert.Nil(t, e.Buffer(id1))
	assert.NotNil(t, e.Buffer(id2))
}

func TestEditorLoadBuffers(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.txt")
	f2 := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(f1, []byte("aaa"), 0644))
	require.NoError(t, os.WriteFile(f2, []byte("bbb"), 0644))

	e := editor.New()
	e.LoadBuffers([]string{f1, f2})
	assert.Equal(t, 2, e.Len())

	_, bufs := e.Buffers()
	var contents []string
	for _, b := range bufs {
		contents = append(contents, b.String())
	}
	assert.ElementsMatch(t, []string{"aaa", "bbb"}, contents)
}

func TestEditorLoadBuffersEmptyGetsScratch(t *testing.T) {
	e := editor.New()
	e.LoadBuffers(nil)
	assert.Equal(t, 1, e.Len())
}

func TestEditorEditListsBuffers(t *testing.T) {
	e := editor.New()
	id, buf := e.NewBuffer()
	buf.NewFile("/tmp/somefile.txt")

	out := e.Edit(id, "f")
	assert.Contains(t, out, "buffers:")
}

func TestEditorEditUnknownCommand(t *testing.T) {
	e := editor.New()
	id, _ := e.NewBuffer()
	assert.Equal(t, "?", e.Edit(id, "x"))
}

func TestEditorEditUnknownBuffer(t *testing.T) {
	e := editor.New()
	assert.Equal(t, "", e.Edit(999, "f"))
}
