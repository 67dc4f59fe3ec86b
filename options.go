package progress

import (
	"fmt"
	"time"
)

// Render defaults applied when the corresponding Options field is zero.
const (
	DefaultRenderThrottle = 16 * time.Millisecond
	DefaultMinWidth       = 20
	DefaultBarComplete    = "█"
	DefaultBarIncomplete  = "░"
)

// Options configure a new Bar. The zero value is usable: an unknown total,
// stderr output and the defaults above.
type Options struct {
	// Total is the completion target. Zero leaves the total unknown until
	// SetTotal or a Reader discovers it; percent, remaining and eta stay
	// zero until then.
	Total int64

	// Current is the starting position.
	Current int64

	// Width caps the drawn bar at a fixed number of cells. Zero lets the
	// bar claim whatever space the template leaves free on the line.
	Width int

	// MinWidth floors the computed bar width. Defaults to DefaultMinWidth.
	MinWidth int

	// RenderThrottle is the minimum wall-clock gap between redraws, so a
	// hot tick loop does not melt the terminal. Zero means
	// DefaultRenderThrottle; completion always forces a final redraw
	// regardless. Use something tiny like time.Nanosecond to redraw on
	// every tick.
	RenderThrottle time.Duration

	// Terminal receives the drawing. Defaults to NewTerminal(os.Stderr).
	Terminal Terminal

	// Line places the bar that many rows above the cursor, for stacking
	// several bars. Zero draws on the current line.
	Line int

	// ClearOnFinish erases the bar on completion instead of leaving it
	// behind with a trailing newline.
	ClearOnFinish bool

	// OnComplete runs exactly once, synchronously, when current first
	// reaches the total.
	OnComplete func(*Bar)

	// BarComplete and BarIncomplete are the fill glyphs. Only the first
	// rune of each is used.
	BarComplete   string
	BarIncomplete string

	// Format renders {current}, {total} and {speed}. Defaults to
	// FormatDecimal; FormatBytes suits byte-counting bars.
	Format ValueFormatter

	// Speed replaces the since-start average with another rate estimate,
	// typically NewWindowedSpeed. The bar stops the estimator when it
	// completes.
	Speed SpeedEstimator

	// Colorize expands colorstring markup like "[green]{bar}[reset]" in
	// the template on every frame.
	Colorize bool
}

func (o Options) validate() error {
	if o.Total < 0 {
		return fmt.Errorf("%w: total must not be negative, got %d", ErrInvalidArgument, o.Total)
	}
	if o.Current < 0 {
		return fmt.Errorf("%w: current must not be negative, got %d", ErrInvalidArgument, o.Current)
	}
	if o.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidArgument, o.Width)
	}
	if o.MinWidth < 0 {
		return fmt.Errorf("%w: min width must not be negative, got %d", ErrInvalidArgument, o.MinWidth)
	}
	if o.RenderThrottle < 0 {
		return fmt.Errorf("%w: render throttle must not be negative, got %s", ErrInvalidArgument, o.RenderThrottle)
	}
	if o.Line < 0 {
		return fmt.Errorf("%w: line must not be negative, got %d", ErrInvalidArgument, o.Line)
	}
	return nil
}

// firstRune reduces a glyph option to a single rune, falling back when the
// option is empty.
func firstRune(s, fallback string) string {
	if s == "" {
		return fallback
	}
	for _, r := range s {
		return string(r)
	}
	return fallback
}
