package editor

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/prodhe/gapbuffer/gapbuffer"
)

const (
	BufferFile uint8 = iota
	BufferDir
)

// Buffer is a buffer for editing. It uses an underlying gap buffer for
// storage and manages text operations like insert, delete, selection and
// searching.
//
// Although the underlying buffer is a byte sequence, Buffer only works
// with runes and UTF-8.
type Buffer struct {
	buf      *gapbuffer.GapBuffer[byte]
	file     *File
	what     uint8
	dirty    bool
	q0, q1   int    // dot/cursor
	off      int    // offset for reading runes in buffer
	lastRune rune   // save the last read rune
	runeBuf  []byte // temp buf to read a rune at a time
}

// initBuffer initializes a nil buffer into the zero value of buffer.
func (b *Buffer) initBuffer() {
	if b.buf == nil {
		b.buf = gapbuffer.NewByteBuffer(nil)
	}
}

// NewFile sets a filename for the buffer.
func (b *Buffer) NewFile(fn string) {
	b.file = &File{name: fn}
}

// ReadFile reads content of the buffer's filename into the buffer.
func (b *Buffer) ReadFile() error {
	b.initBuffer()

	if b.file == nil || b.file.read {
		return nil // silent
	}

	info, err := os.Stat(b.file.name)
	if err != nil {
		// if the file exists, print why we could not open it
		// otherwise just close silently
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%s", err)
	}

	// name is a directory; list its content into the buffer
	if info.IsDir() {
		entries, err := os.ReadDir(b.file.name)
		if err != nil {
			return fmt.Errorf("%s", err)
		}

		b.what = BufferDir

		for _, e := range entries {
			dirchar := ""
			if e.IsDir() {
				dirchar = string(filepath.Separator)
			}
			if err := b.buf.Extend([]byte(fmt.Sprintf("%s%s\n", e.Name(), dirchar))); err != nil {
				return err
			}
		}
		return nil
	}

	// name is a file
	fh, err := os.OpenFile(b.file.name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("%s", err)
	}
	defer fh.Close()

	content, err := io.ReadAll(fh)
	if err != nil {
		return fmt.Errorf("%s", err)
	}
	if err := b.buf.Extend(content); err != nil {
		return err
	}

	h := sha256.Sum256(content)
	b.file.sha256 = fmt.Sprintf("%x", h)
	b.file.mtime = info.ModTime()
	b.file.read = true

	b.what = BufferFile

	return nil
}

// IsDir returns true if this buffer holds a directory listing.
func (b *Buffer) IsDir() bool {
	return b.what == BufferDir
}

// SaveFile writes content of buffer to its filename via the buffer's
// contiguous view.
func (b *Buffer) SaveFile() (int, error) {
	b.initBuffer()

	if b.file == nil || b.file.name == "" {
		return 0, errors.New("no filename")
	}

	if b.what != BufferFile { // can only save file buffers
		return 0, nil
	}

	f, err := os.OpenFile(b.file.name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		if os.IsExist(err) {
			return 0, fmt.Errorf("%s already exists", b.file.name)
		}
		return 0, err
	}
	defer f.Close()

	view, err := b.buf.AcquireView()
	if err != nil {
		return 0, err
	}
	n, werr := f.WriteAt(view.Data(), 0)
	sum := sha256.Sum256(view.Data())
	view.Release()
	if werr != nil {
		return n, werr
	}
	f.Truncate(int64(n))
	f.Sync()

	b.file.sha256 = fmt.Sprintf("%x", sum)

	info, err := f.Stat()
	if err != nil {
		return n, err
	}
	b.file.mtime = info.ModTime()

	b.dirty = false

	return n, nil
}

// Name returns either the file from disk name or empty string if the
// buffer has no disk counterpart.
func (b *Buffer) Name() string {
	if b.file == nil || b.file.name == "" {
		return ""
	}
	s, _ := filepath.Abs(b.file.name)
	return s
}

// WorkDir returns the working directory of the underlying file, ie the
// absolute path to the file with the last part stripped. If the file is
// a directory, its name is returned as is.
func (b *Buffer) WorkDir() string {
	switch b.what {
	case BufferFile:
		return filepath.Dir(b.Name())
	case BufferDir:
		return b.Name()
	default:
		return ""
	}
}

// Write implements io.Writer.
//
// If dot has content, it is replaced by a deletion before the bytes are
// inserted.
func (b *Buffer) Write(p []byte) (int, error) {
	b.initBuffer()

	if len(b.ReadDot()) > 0 {
		b.Delete()
	}

	if err := b.buf.Insert(b.q0, p); err != nil {
		return 0, err
	}
	n := len(p)
	b.SeekDot(n, io.SeekCurrent) // move dot
	if b.what == BufferFile {
		b.dirty = true
	}
	return n, nil
}

// Delete removes the current selection in dot. If dot is empty, it
// selects the previous rune and deletes that.
func (b *Buffer) Delete() (int, error) {
	b.initBuffer()

	if len(b.ReadDot()) == 0 {
		b.q0--
		c, _ := b.byteAt(b.q0)
		for !utf8.RuneStart(c) {
			b.q0--
			c, _ = b.byteAt(b.q0)
		}
		if b.q0 < 0 {
			b.q0 = 0
			return 0, nil
		}
	}
	n := b.q1 - b.q0
	if err := b.buf.DelSlice(b.q0, b.q1); err != nil {
		return 0, err
	}
	b.SetDot(b.q0, b.q0)
	if b.what == BufferFile {
		b.dirty = true
	}
	return n, nil
}

// Destroy empties the buffer and resets dot to 0.
func (b *Buffer) Destroy() {
	b.initBuffer()
	b.buf.Clear()
	b.SetDot(0, 0)
	b.dirty = false
	if b.file != nil {
		b.file.read = false
	}
}

// Len returns the number of bytes in buffer.
func (b *Buffer) Len() int {
	b.initBuffer()

	return b.buf.Len()
}

// String returns the entire text buffer as a string.
func (b *Buffer) String() string {
	b.initBuffer()

	return b.buf.String()
}

// Dirty returns true if the buffer has changed since last save.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// byteAt reads a single byte by logical index, translating an
// out-of-range index into io.EOF so callers scanning forward or
// backward can use the familiar io.Reader convention.
func (b *Buffer) byteAt(offset int) (byte, error) {
	v, err := b.buf.Get(offset)
	if err != nil {
		if errors.Is(err, gapbuffer.ErrOutOfRange) {
			return 0, io.EOF
		}
		return 0, err
	}
	return v, nil
}

// ReadRune reads a rune from buffer and advances the internal offset.
// This could be called in sequence to get all runes from buffer. This
// populates LastRune().
func (b *Buffer) ReadRune() (r rune, size int, err error) {
	r, size, err = b.ReadRuneAt(b.off)
	b.off += size
	b.lastRune = r
	return
}

// UnreadRune returns the rune before the current Seek offset and moves
// the offset to point to that. This could be called in sequence to scan
// backwards.
func (b *Buffer) UnreadRune() (r rune, size int, err error) {
	b.off--
	r, size, err = b.ReadRuneAt(b.off)
	b.off++
	if err != nil {
		return
	}
	b.off -= size
	return
}

// ReadRuneAt returns the rune and its size at offset. If the given offset
// (in byte count) is not a valid rune start, it backs up until it finds
// a valid starting point and returns that one.
//
// This is basically a Seek(offset) followed by a ReadRune(), but does not
// affect the internal offset for future reads.
func (b *Buffer) ReadRuneAt(offset int) (r rune, size int, err error) {
	b.initBuffer()

	var c byte
	c, err = b.byteAt(offset)
	if err != nil {
		return 0, 0, err
	}
	for !utf8.RuneStart(c) {
		offset--
		c, err = b.byteAt(offset)
		if err != nil {
			return 0, 0, err
		}
	}

	if c < utf8.RuneSelf {
		return rune(c), 1, nil
	}

	if cap(b.runeBuf) < utf8.UTFMax {
		b.runeBuf = make([]byte, utf8.UTFMax)
	}
	n := b.Len() - offset
	if n > utf8.UTFMax {
		n = utf8.UTFMax
	}
	for i := 0; i < n; i++ {
		b.runeBuf[i], _ = b.byteAt(offset + i)
	}
	r, size = utf8.DecodeRune(b.runeBuf[:n])

	return r, size, nil
}

// LastRune returns the last rune read by ReadRune().
func (b *Buffer) LastRune() rune {
	return b.lastRune
}

// ReadDot returns content of current dot.
func (b *Buffer) ReadDot() string {
	b.initBuffer()

	if b.q0 == b.q1 {
		return ""
	}
	sl, err := b.buf.GetSlice(b.q0, b.q1)
	if err != nil {
		return ""
	}
	return sl.String()
}

// Dot returns current offsets for dot.
func (b *Buffer) Dot() (int, int) {
	return b.q0, b.q1
}

// Seek sets the internal offset for the next ReadRune() or UnreadRune(),
// with io.Seeker's whence values. It takes and returns int offsets, so
// Buffer does not satisfy io.Seeker. If the offset is not a valid rune
// start, it backs up until it finds one.
func (b *Buffer) Seek(offset, whence int) (int, error) {
	b.initBuffer()

	switch whence {
	case io.SeekStart:
		b.off = offset
	case io.SeekCurrent:
		b.off += offset
	case io.SeekEnd:
		b.off = b.Len() + offset
	default:
		return 0, errors.New("invalid whence")
	}

	c, _ := b.byteAt(b.off)
	for !utf8.RuneStart(c) {
		b.off--
		c, _ = b.byteAt(b.off)
	}

	return b.off, nil
}

// SeekDot sets the dot to a single offset in the text buffer.
func (b *Buffer) SeekDot(offset, whence int) (int, error) {
	switch whence {
	case io.SeekStart:
		q0, _, err := b.SetDot(offset, offset)
		return q0, err
	case io.SeekCurrent:
		q0, _, err := b.SetDot(b.q0+offset, b.q0+offset)
		return q0, err
	case io.SeekEnd:
		q0, _, err := b.SetDot(b.Len()+offset, b.Len()+offset)
		return q0, err
	default:
		return 0, errors.New("invalid whence")
	}
}

// SetDot sets both ends of the dot into an absolute position. It checks
// the given offsets and adjusts them so they are not out of bounds or on
// an invalid rune start. It returns the final offsets. Error is always
// nil.
func (b *Buffer) SetDot(q0, q1 int) (int, int, error) {
	b.initBuffer()

	b.q0, b.q1 = q0, q1

	if b.q0 < 0 {
		b.q0 = 0
	}
	if b.q1 < 0 {
		b.q1 = 0
	}
	if b.q0 > b.buf.Len() {
		b.q0 = b.buf.Len()
	}
	if b.q1 > b.buf.Len() {
		b.q1 = b.buf.Len()
	}

	if b.q0 > b.q1 {
		b.q0 = b.q1
	}

	var c byte
	c, _ = b.byteAt(b.q0)
	for b.q0 > 0 && !utf8.RuneStart(c) {
		b.q0--
		c, _ = b.byteAt(b.q0)
	}
	c, _ = b.byteAt(b.q1)
	for b.q1 > 0 && !utf8.RuneStart(c) {
		b.q1--
		c, _ = b.byteAt(b.q1)
	}

	return b.q0, b.q1, nil
}

// ExpandDot expands the current selection by a positive or negative
// offset. A positive offset expands forwards and a negative expands
// backwards. q is 0 or 1, either the left or the right end of the dot.
func (b *Buffer) ExpandDot(q, offset int) {
	if q < 0 || q > 1 {
		return
	}

	if q == 0 {
		b.SetDot(b.q0+offset, b.q1)
	} else {
		b.SetDot(b.q0, b.q1+offset)
	}
}

// Select expands the dot at offset into the longest adjacent word, or a
// single rune if no such word exists.
func (b *Buffer) Select(offset int) {
	offset, _ = b.Seek(offset, io.SeekStart)
	start, end := offset, offset

	start -= b.PrevWord(start)
	end += b.NextWord(end)

	if start == end {
		b.Seek(offset, io.SeekStart)
		_, size, _ := b.ReadRune()
		end += size
	}

	b.SetDot(start, end)
}

func (b *Buffer) NextSpace(offset int) (n int) {
	offset, _ = b.Seek(offset, io.SeekStart)

	r, size, err := b.ReadRune()
	if err != nil {
		return 0
	}
	for !unicode.IsSpace(r) {
		n += size
		r, size, err = b.ReadRune()
		if err != nil {
			if err == io.EOF {
				return n
			}
			return 0
		}
	}

	return n
}

func (b *Buffer) PrevSpace(offset int) (n int) {
	offset, _ = b.Seek(offset, io.SeekStart)

	r, size, err := b.ReadRuneAt(offset)
	if err != nil {
		return 0
	}
	for !unicode.IsSpace(r) {
		r, size, err = b.UnreadRune()
		if err != nil {
			if err == io.EOF {
				return n
			}
		}
		n += size
	}

	if n > 0 {
		n -= size // remove last iteration
	}

	return n
}

func (b *Buffer) NextWord(offset int) (n int) {
	offset, _ = b.Seek(offset, io.SeekStart)

	r, size, err := b.ReadRune()
	if err != nil {
		return 0
	}
	for unicode.IsLetter(r) || unicode.IsDigit(r) {
		n += size
		r, size, err = b.ReadRune()
		if err != nil {
			if err == io.EOF {
				return n
			}
			return 0
		}
	}

	return n
}

func (b *Buffer) PrevWord(offset int) (n int) {
	offset, _ = b.Seek(offset, io.SeekStart)

	r, size, _ := b.ReadRuneAt(offset)
	for unicode.IsLetter(r) || unicode.IsDigit(r) {
		r, size, _ = b.UnreadRune()
		n += size
	}

	if n > 0 {
		n -= size // remove last iteration
	}

	return n
}

// NextDelim returns the number of bytes from the given offset up until
// the next delimiter.
func (b *Buffer) NextDelim(delim rune, offset int) (n int) {
	b.Seek(offset, io.SeekStart)

	r, size, err := b.ReadRune()
	if err != nil {
		return 0
	}

	for r != delim {
		n += size
		r, size, err = b.ReadRune()
		if err != nil {
			if err == io.EOF {
				return n
			}
			return 0
		}
	}

	return n
}

// PrevDelim returns the number of bytes from the given offset back to
// the previous delimiter.
func (b *Buffer) PrevDelim(delim rune, offset int) (n int) {
	b.Seek(offset, io.SeekStart)
	r, size, err := b.UnreadRune()
	if err != nil {
		return 0
	}
	n += size

	for r != delim {
		r, size, err = b.UnreadRune()
		n += size
		if err != nil {
			if err == io.EOF {
				return n
			}
			return 0
		}
	}

	return n
}
