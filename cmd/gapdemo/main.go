// Command gapdemo walks through the buffer's operations end to end,
// printing the buffer's state after each step. It follows the same
// scenario sequence as the original GapBuffer demonstration script, plus
// a wide-kind word-finder scenario exercising a non-Latin script.
package main

import (
	"fmt"
	"regexp"

	"github.com/prodhe/gapbuffer/display"
	"github.com/prodhe/gapbuffer/gapbuffer"
)

func main() {
	fmt.Println(display.Render(gapbuffer.NewByteBuffer([]byte("The life of Brian"))))
	fmt.Println(display.Render(gapbuffer.NewWideBuffer([]rune("Mr Creosote"))))
	fmt.Println(display.Render(gapbuffer.NewIntBuffer([]int64{1, 2, 3})))

	fmt.Println()
	movie := gapbuffer.NewByteBuffer([]byte("The life of Brian"))

	must(movie.SetSlice(0, movie.Len(), []byte("The meaning - with Life")))
	fmt.Println(movie)

	must(movie.DelSlice(12, 14))
	fmt.Println(movie)

	must(movie.Set(4, 'M'))
	fmt.Println(movie)

	must(movie.SetSlice(12, 16, []byte("of")))
	fmt.Println(movie)

	first3, err := movie.GetSlice(0, 3)
	must(err)
	fmt.Println(first3)
	fmt.Println(movie.Len())

	must(movie.Insert(0, []byte("'")))
	must(movie.Extend([]byte("'!")))
	fmt.Println(movie)

	mid, err := movie.GetSlice(5, 7)
	must(err)
	fmt.Println(mid)
	fmt.Println(movie.Cap())

	must(movie.SetSlice(0, movie.Len(), []byte("ab")))
	fmt.Println(movie.Cap())
	must(movie.Slim())
	fmt.Println(movie.Cap())

	fmt.Println()
	positions := gapbuffer.NewIntBuffer([]int64{100, 140, 220, 280})
	must(positions.Increment(1, 3, -7))
	fmt.Println(display.Render(positions))

	fmt.Println()
	demoRegexpSearch()
	fmt.Println()
	demoWideWordFinder()
}

// demoRegexpSearch scans a GapBuffer's contiguous view with a standard
// regexp, the way an external tool would.
func demoRegexpSearch() {
	movie := gapbuffer.NewWideBuffer([]rune("The life of Brian"))
	fmt.Println(movie)

	view, err := movie.AcquireView()
	must(err)
	defer view.Release()

	re := regexp.MustCompile(`B[a-z]+`)
	loc := re.FindStringIndex(string(view.Data()))
	if loc != nil {
		fmt.Println(string(view.Data()[loc[0]:loc[1]]))
	}
}

// demoWideWordFinder runs a word-finder over a wide-kind buffer holding
// Cyrillic text, confirming KindWide buffers carry non-Latin scripts
// correctly through the contiguous view.
func demoWideWordFinder() {
	phrase := gapbuffer.NewWideBuffer([]rune("Палить из пушки по воробьям"))
	fmt.Println(display.Render(phrase))

	view, err := phrase.AcquireView()
	must(err)
	defer view.Release()

	re := regexp.MustCompile(`[\p{L}]+`)
	for _, w := range re.FindAllString(string(view.Data()), -1) {
		fmt.Println(w)
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
