package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mosamuhana/node-progress/internal/termio"
)

// Terminal is the surface a Bar draws on. The bar only ever rewrites a
// single line, so the contract is small: write bytes, report whether
// anyone is watching, report the width, and move the cursor around.
//
// Implementations need not be safe for concurrent use; a Bar drives its
// Terminal from one goroutine.
type Terminal interface {
	io.Writer

	// IsTerminal reports whether output reaches an interactive terminal.
	// When false the bar suppresses all drawing.
	IsTerminal() bool

	// Columns returns the current width in cells, zero when unknown.
	Columns() int

	// CursorTo moves the cursor to the given zero-based column.
	CursorTo(col int)

	// CursorUp and CursorDown move the cursor n rows, for bars pinned
	// above the current line.
	CursorUp(n int)
	CursorDown(n int)

	// ClearLine erases the whole current line.
	ClearLine()

	// ClearLineRight erases from the cursor to the end of the line.
	ClearLineRight()
}

// ansiTerminal drives a real terminal file with ANSI control sequences.
type ansiTerminal struct {
	f     *os.File
	isTTY bool
}

// NewTerminal wraps an open terminal file, usually os.Stderr or os.Stdout.
// TTY detection happens once here; redirecting the descriptor mid-run is
// not something the bar chases.
func NewTerminal(f *os.File) Terminal {
	return &ansiTerminal{f: f, isTTY: termio.IsTerminal(int(f.Fd()))}
}

func (t *ansiTerminal) Write(p []byte) (int, error) {
	return t.f.Write(p)
}

func (t *ansiTerminal) IsTerminal() bool {
	return t.isTTY
}

func (t *ansiTerminal) Columns() int {
	if !t.isTTY {
		return 0
	}
	return termio.Width(int(t.f.Fd()))
}

func (t *ansiTerminal) CursorTo(col int) {
	if col <= 0 {
		fmt.Fprint(t.f, "\r")
		return
	}
	fmt.Fprintf(t.f, "\x1b[%dG", col+1)
}

func (t *ansiTerminal) CursorUp(n int) {
	if n > 0 {
		fmt.Fprintf(t.f, "\x1b[%dA", n)
	}
}

func (t *ansiTerminal) CursorDown(n int) {
	if n > 0 {
		fmt.Fprintf(t.f, "\x1b[%dB", n)
	}
}

func (t *ansiTerminal) ClearLine() {
	fmt.Fprint(t.f, "\x1b[2K")
}

func (t *ansiTerminal) ClearLineRight() {
	fmt.Fprint(t.f, "\x1b[K")
}
