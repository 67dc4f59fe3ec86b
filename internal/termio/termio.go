// Package termio answers the questions a line-oriented renderer asks about
// a terminal: is this fd a TTY, how many columns does it have, and how many
// cells does a string occupy once ANSI color codes are ignored.
package termio

import (
	"regexp"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultWidth is assumed when the terminal size cannot be read.
const DefaultWidth = 80

// AnsiRegex is compiled once for performance.
var AnsiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const widthCacheTTL = 500 * time.Millisecond

type widthEntry struct {
	width     int
	checkedAt time.Time
}

var (
	widthMu    sync.Mutex
	widthCache = map[int]widthEntry{}
)

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Width returns the column count of the terminal behind fd, defaulting to
// DefaultWidth when the size cannot be read. Lookups are cached briefly so
// a render loop does not issue an ioctl per frame.
func Width(fd int) int {
	widthMu.Lock()
	if e, ok := widthCache[fd]; ok && time.Since(e.checkedAt) <= widthCacheTTL && e.width > 0 {
		widthMu.Unlock()
		return e.width
	}
	widthMu.Unlock()

	width, _, err := term.GetSize(fd)
	if err != nil || width == 0 {
		width = DefaultWidth
	}

	widthMu.Lock()
	widthCache[fd] = widthEntry{width: width, checkedAt: time.Now()}
	widthMu.Unlock()

	return width
}

// StripAnsi removes ANSI color sequences from a string.
func StripAnsi(s string) string {
	return AnsiRegex.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal cells a string occupies,
// excluding ANSI color codes and counting wide runes as two cells.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// Truncate cuts a string down to at most maxWidth terminal cells. Color
// codes are stripped first so the cut cannot leave an unterminated escape
// sequence behind.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	stripped := StripAnsi(s)
	if runewidth.StringWidth(stripped) <= maxWidth {
		return stripped
	}
	return runewidth.Truncate(stripped, maxWidth, "")
}
