// Command gapview is a read-only terminal pager over a file, loaded
// into a gapbuffer.GapBuffer[byte] and viewed through its contiguous
// view. Unlike the host editor, gapview has no insert/delete
// commands — it exists to exercise the buffer's read path in a real
// terminal.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/atotto/clipboard"
	tcell "github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/term"

	"github.com/prodhe/gapbuffer/gapbuffer"
)

var (
	bodyStyle  = tcell.StyleDefault
	matchStyle = tcell.StyleDefault.Reverse(true)
)

func main() {
	search := flag.String("search", "", "regexp to highlight")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: gapview [-search pattern] file")
		os.Exit(2)
	}
	fn := flag.Arg(0)

	content, err := os.ReadFile(fn)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	buf := gapbuffer.NewByteBuffer(content)

	var re *regexp.Regexp
	if *search != "" {
		re, err = regexp.Compile(*search)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		view, err := buf.AcquireView()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer view.Release()
		io.Copy(os.Stdout, bytes.NewReader(view.Data()))
		return
	}

	if err := run(buf, re); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run draws buf's contiguous view to a tcell screen and lets the user
// scroll and, with 'y', yank the current regexp match to the clipboard.
func run(buf *gapbuffer.GapBuffer[byte], re *regexp.Regexp) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(bodyStyle)

	view, err := buf.AcquireView()
	if err != nil {
		return err
	}
	defer view.Release()

	lines := splitLines(view.Data())

	var matchLine, matchStart, matchEnd int = -1, -1, -1
	if re != nil {
		if loc := re.FindIndex(view.Data()); loc != nil {
			matchLine, matchStart, matchEnd = locateLine(lines, loc[0], loc[1])
		}
	}

	top := 0
	if matchLine > 0 {
		top = matchLine
	}

	for {
		w, h := screen.Size()
		screen.Clear()
		for row := 0; row < h && top+row < len(lines); row++ {
			drawLine(screen, row, w, lines[top+row], top+row == matchLine, matchStart, matchEnd)
		}
		screen.Show()

		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			switch {
			case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC, e.Rune() == 'q':
				return nil
			case e.Key() == tcell.KeyDown, e.Rune() == 'j':
				if top < len(lines)-1 {
					top++
				}
			case e.Key() == tcell.KeyUp, e.Rune() == 'k':
				if top > 0 {
					top--
				}
			case e.Rune() == 'y':
				if matchLine >= 0 {
					clipboard.WriteAll(string(lines[matchLine][matchStart:matchEnd]))
				}
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func splitLines(b []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, c := range b {
		if c == '\n' {
			lines = append(lines, b[start:i])
			start = i + 1
		}
	}
	if start < len(b) {
		lines = append(lines, b[start:])
	}
	return lines
}

// locateLine maps a byte-offset match [start,end) in the concatenated
// buffer to the line it falls on and its column bounds within that line.
func locateLine(lines [][]byte, start, end int) (line, col0, col1 int) {
	off := 0
	for i, l := range lines {
		if start >= off && start <= off+len(l) {
			return i, start - off, end - off
		}
		off += len(l) + 1
	}
	return -1, -1, -1
}

// drawLine renders one line using uniseg to walk grapheme clusters and
// go-runewidth to compute the column each one occupies.
func drawLine(screen tcell.Screen, row, width int, line []byte, highlight bool, matchStart, matchEnd int) {
	col := 0
	byteOff := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() && col < width {
		runes := gr.Runes()
		cl := runewidth.RuneWidth(runes[0])
		if cl == 0 {
			cl = 1
		}
		style := bodyStyle
		if highlight && byteOff >= matchStart && byteOff < matchEnd {
			style = matchStyle
		}
		screen.SetContent(col, row, runes[0], runes[1:], style)
		col += cl
		for _, r := range runes {
			byteOff += len(string(r))
		}
	}
}

