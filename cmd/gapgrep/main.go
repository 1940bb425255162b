// Command gapgrep expands a glob, loads each matched file into a
// gapbuffer.GapBuffer[byte], and reports regexp matches found in its
// contiguous view. With -watch it keeps running and rescans a file
// whenever it changes on disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/prodhe/gapbuffer/gapbuffer"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and rescan on file change")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: gapgrep [-watch] pattern glob")
		os.Exit(2)
	}
	pattern := flag.Arg(0)
	glob := flag.Arg(1)

	re, err := regexp.Compile(pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	matches, err := doublestar.FilepathGlob(glob)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "gapgrep: no files matched", glob)
		os.Exit(1)
	}

	for _, fn := range matches {
		if err := scan(fn, re); err != nil {
			fmt.Fprintln(os.Stderr, fn+":", err)
		}
	}

	if !*watch {
		return
	}
	if err := watchFiles(matches, re); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scan loads fn into a byte-kind gap buffer and reports every regexp
// match found in its contiguous view, by line and column.
func scan(fn string, re *regexp.Regexp) error {
	content, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	buf := gapbuffer.NewByteBuffer(content)

	view, err := buf.AcquireView()
	if err != nil {
		return err
	}
	defer view.Release()

	for _, loc := range re.FindAllIndex(view.Data(), -1) {
		line, col := lineCol(view.Data(), loc[0])
		fmt.Printf("%s:%d:%d: %s\n", fn, line, col, view.Data()[loc[0]:loc[1]])
	}
	return nil
}

func lineCol(b []byte, off int) (line, col int) {
	line = 1
	lineStart := 0
	for i := 0; i < off && i < len(b); i++ {
		if b[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, off - lineStart + 1
}

// watchFiles rescans a file with re whenever fsnotify reports it was
// written or created.
func watchFiles(files []string, re *regexp.Regexp) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, fn := range files {
		if err := w.Add(fn); err != nil {
			return err
		}
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := scan(ev.Name, re); err != nil {
					fmt.Fprintln(os.Stderr, ev.Name+":", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch:", err)
		}
	}
}
