// Package progress renders a single-line terminal progress bar from a
// token template while tracking completion and throughput metrics for a
// count advancing toward a total.
//
// The template mixes literal text with built-in tokens:
//
//	bar := progress.New("  downloading [{bar}] {percent} {eta}s", progress.Options{Total: 100})
//	for i := 0; i < 100; i++ {
//		bar.Tick(nil)
//	}
//
// {bar} expands to the fill glyphs, {current}, {total}, {elapsed}, {eta},
// {percent} and {speed} to the live metrics. Custom tokens written as
// [name] in the template are filled from the map passed to Tick or Set.
//
// Drawing only happens on an interactive terminal. When output is piped,
// the bar stays silent and only the completion callback still fires, so
// the same code path works in scripts and CI logs.
package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/colorstring"

	"github.com/mosamuhana/node-progress/internal/termio"
)

// DefaultFormat is used when New is given an empty template.
const DefaultFormat = "{bar} {percent}"

// Bar is a single-line terminal progress bar. It owns the counters, the
// redraw throttle and the last drawn frame.
//
// A Bar is not safe for concurrent use. One goroutine ticks a bar; the
// only background activity in this package is the Speedometer's window
// timer, which never touches the bar.
type Bar struct {
	format string
	term   Terminal

	total   int64
	current int64

	width           int
	minWidth        int
	completeGlyph   string
	incompleteGlyph string

	throttle      time.Duration
	line          int
	clearOnFinish bool
	colorize      bool
	onComplete    func(*Bar)
	formatValue   ValueFormatter
	speed         SpeedEstimator

	tokens map[string]string
	snap   Snapshot

	started    bool
	startTime  time.Time
	lastTick   time.Time
	lastRender time.Time
	lastDraw   string
	completed  bool

	now func() time.Time
}

// New builds a Bar from a template and options. An empty template means
// DefaultFormat; a template without {bar} gets one prepended.
func New(format string, opts Options) (*Bar, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if format == "" {
		format = DefaultFormat
	}
	if !strings.Contains(format, "{bar}") {
		format = "{bar}" + format
	}

	b := &Bar{
		format:          format,
		term:            opts.Terminal,
		total:           opts.Total,
		current:         opts.Current,
		width:           opts.Width,
		minWidth:        opts.MinWidth,
		completeGlyph:   firstRune(opts.BarComplete, DefaultBarComplete),
		incompleteGlyph: firstRune(opts.BarIncomplete, DefaultBarIncomplete),
		throttle:        opts.RenderThrottle,
		line:            opts.Line,
		clearOnFinish:   opts.ClearOnFinish,
		colorize:        opts.Colorize,
		onComplete:      opts.OnComplete,
		formatValue:     opts.Format,
		speed:           opts.Speed,
		now:             time.Now,
	}
	if b.term == nil {
		b.term = NewTerminal(os.Stderr)
	}
	if b.minWidth == 0 {
		b.minWidth = DefaultMinWidth
	}
	if b.throttle == 0 {
		b.throttle = DefaultRenderThrottle
	}
	if b.formatValue == nil {
		b.formatValue = FormatDecimal
	}
	b.snap = computeSnapshot(b.current, b.total, 0)
	return b, nil
}

// Tick advances the bar by one unit. The tokens map replaces the custom
// token values wholesale on every update; passing nil clears them.
func (b *Bar) Tick(tokens map[string]string) {
	b.advance(b.current+1, tokens)
}

// Set moves the bar to an absolute position. Values beyond the total are
// allowed; the drawn bar and percent clamp, the raw metrics do not.
func (b *Bar) Set(current int64, tokens map[string]string) {
	b.advance(current, tokens)
}

// SetRatio positions the bar at a completion ratio of the total, clamped
// to [0, 1].
func (b *Bar) SetRatio(ratio float64, tokens map[string]string) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	b.advance(int64(math.Floor(ratio*float64(b.total))), tokens)
}

// SetTotal replaces the completion target, for totals that only become
// known mid-run. Current and runtime are untouched.
func (b *Bar) SetTotal(v int64) error {
	if v <= 0 {
		return fmt.Errorf("%w: total must be a positive count, got %d", ErrInvalidArgument, v)
	}
	b.total = v
	b.refreshSnapshot()
	return nil
}

// Snapshot returns the metrics as of the latest update.
func (b *Bar) Snapshot() Snapshot {
	return b.snap
}

// Complete reports whether current has reached the total.
func (b *Bar) Complete() bool {
	return b.completed
}

// advance is the single mutator behind Tick, Set and SetRatio. It moves
// the counter and refreshes the metrics before rendering, and fires
// completion exactly once when the total is first reached.
func (b *Bar) advance(current int64, tokens map[string]string) {
	if b.completed {
		return
	}
	now := b.now()
	if !b.started {
		b.started = true
		b.startTime = now
	}
	b.lastTick = now
	b.current = current
	b.tokens = tokens
	b.refreshSnapshot()

	b.render(false)

	if b.total > 0 && b.current >= b.total {
		b.render(true)
		b.completed = true
		b.terminate()
		if b.speed != nil {
			b.speed.Stop()
		}
		if b.onComplete != nil {
			b.onComplete(b)
		}
	}
}

func (b *Bar) refreshSnapshot() {
	var elapsed time.Duration
	if b.started {
		elapsed = b.lastTick.Sub(b.startTime)
	}
	snap := computeSnapshot(b.current, b.total, elapsed)
	if b.speed != nil {
		rate := b.speed.Update(b.current, elapsed)
		snap.Speed = round3(rate)
		snap.ETA = 0
		if rate > 0 && b.total > 0 {
			snap.ETA = round3(float64(snap.Remaining) / rate)
		}
	}
	b.snap = snap
}

// render redraws the bar unless the throttle window is still open. force
// bypasses the throttle but never the frame diff: a frame identical to
// the previous one is not written at all.
func (b *Bar) render(force bool) {
	if !b.term.IsTerminal() {
		return
	}
	cols := b.term.Columns()
	if cols <= 0 {
		return
	}
	now := b.now()
	if !force && !b.lastRender.IsZero() && now.Sub(b.lastRender) < b.throttle {
		return
	}
	b.lastRender = now

	frame := b.frame(cols)
	if frame == b.lastDraw {
		return
	}
	b.draw(frame)
	b.lastDraw = frame
}

// frame expands the template into the line to draw for the current state.
func (b *Bar) frame(cols int) string {
	snap := b.snap
	var ratio float64
	if b.total > 0 {
		ratio = float64(b.current) / float64(b.total)
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	str := b.format
	str = strings.Replace(str, "{current}", b.formatValue(snap.Current), 1)
	str = strings.Replace(str, "{total}", b.formatValue(snap.Total), 1)
	str = strings.Replace(str, "{elapsed}", strconv.FormatFloat(snap.Runtime, 'f', 1, 64), 1)
	str = strings.Replace(str, "{eta}", strconv.FormatFloat(snap.ETA, 'f', 1, 64), 1)
	str = strings.Replace(str, "{percent}", strconv.Itoa(int(math.Floor(ratio*100)))+"%", 1)
	str = strings.Replace(str, "{speed}", b.formatValue(int64(math.Round(snap.Speed))), 1)
	for name, value := range b.tokens {
		str = strings.Replace(str, "["+name+"]", value, 1)
	}
	if b.colorize {
		str = colorstring.Color(str)
	}

	return b.insertBar(str, ratio, cols)
}

// insertBar replaces {bar} with fill glyphs sized to the space the rest of
// the line leaves free. When no space remains the bar is dropped and the
// line truncated to the terminal width.
func (b *Bar) insertBar(str string, ratio float64, cols int) string {
	rest := strings.Replace(str, "{bar}", "", 1)
	used := termio.VisibleWidth(rest)
	avail := cols - used
	if runtime.GOOS == "windows" && avail >= 1 {
		avail--
	}

	if avail <= 0 {
		if used == cols {
			return rest
		}
		return termio.Truncate(rest, cols)
	}

	width := avail
	if b.width > 0 && b.width < width {
		width = b.width
	}
	if width < b.minWidth {
		width = b.minWidth
	}
	if width > avail {
		width = avail
	}

	fill := int(math.Round(float64(width) * ratio))
	bar := strings.Repeat(b.completeGlyph, fill) + strings.Repeat(b.incompleteGlyph, width-fill)
	return strings.Replace(str, "{bar}", bar, 1)
}

// draw rewrites the bar's line in place: cursor to column zero, write the
// frame, clear whatever an earlier longer frame left behind.
func (b *Bar) draw(frame string) {
	if b.line > 0 {
		b.term.CursorUp(b.line)
	}
	b.term.CursorTo(0)
	io.WriteString(b.term, frame)
	b.term.ClearLineRight()
	if b.line > 0 {
		b.term.CursorDown(b.line)
	}
}

// terminate finishes the bar's line: clear it or seal it with a newline.
// Pinned bars never emit the newline, it would shift every other line.
func (b *Bar) terminate() {
	if !b.term.IsTerminal() {
		return
	}
	if b.clearOnFinish {
		if b.line > 0 {
			b.term.CursorUp(b.line)
		}
		b.term.ClearLine()
		b.term.CursorTo(0)
		if b.line > 0 {
			b.term.CursorDown(b.line)
		}
		return
	}
	if b.line > 0 {
		return
	}
	io.WriteString(b.term, "\n")
}

// Interrupt prints a message above the bar without disturbing it: the line
// is cleared, the message lands with its own newline, and the latest frame
// is redrawn below verbatim. On a non-terminal the message is written
// plainly.
func (b *Bar) Interrupt(message string) {
	if !b.term.IsTerminal() {
		fmt.Fprintln(b.term, message)
		return
	}
	b.term.ClearLine()
	b.term.CursorTo(0)
	io.WriteString(b.term, message)
	io.WriteString(b.term, "\n")
	io.WriteString(b.term, b.lastDraw)
}
