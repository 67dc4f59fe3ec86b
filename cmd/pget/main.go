package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"

	progress "github.com/mosamuhana/node-progress"
)

const (
	version   = "1.1.0"
	userAgent = "pget/" + version
)

var client = &http.Client{}

// Progress line templates. The byte templates ride on FormatBytes, the
// segment template counts playlist chunks and shows the one in flight
// through the [name] token.
const (
	byteTemplate        = "  {bar} {percent} │ {current} of {total} │ {speed}/s │ ETA {eta}s"
	coloredByteTemplate = "  [green]{bar}[reset] {percent} │ [cyan]{current} of {total}[reset] │ {speed}/s │ ETA {eta}s"

	unknownSizeTemplate        = "  {bar} {current} │ {speed}/s │ {elapsed}s elapsed"
	coloredUnknownSizeTemplate = "  [green]{bar}[reset] [cyan]{current}[reset] │ {speed}/s │ {elapsed}s elapsed"

	segmentTemplate        = "  {bar} {percent} │ segment {current}/{total} │ [name]"
	coloredSegmentTemplate = "  [green]{bar}[reset] {percent} │ segment [cyan]{current}/{total}[reset] │ [name]"
)

// Args holds CLI arguments parsed by go-arg.
type Args struct {
	Urls     []string `arg:"positional,required" help:"HTTP(S) URLs to download. URLs ending in .m3u8 are fetched segment by segment."`
	Out      string   `arg:"-o" help:"Output file, or directory to place downloads in. Defaults to the URL's base name."`
	Template string   `arg:"-t,--template" help:"Progress line template. Tokens: {bar} {current} {total} {elapsed} {eta} {percent} {speed}."`
	Width    int      `arg:"-w,--width" help:"Fixed bar width in cells. 0 sizes the bar to the terminal."`
	Throttle int      `arg:"--throttle" default:"16" help:"Minimum milliseconds between redraws. 0 redraws on every update."`
	Window   int      `arg:"--window" default:"5" help:"Sliding window in seconds for the speed estimate. 0 averages since start."`
	Clear    bool     `arg:"-c,--clear" help:"Erase the bar once a download completes."`
	Color    bool     `arg:"--color" help:"Colorize the progress line."`
	Quiet    bool     `arg:"-q,--quiet" help:"Suppress the progress bar."`
}

// Description provides custom help text for go-arg.
func (Args) Description() string {
	return "pget downloads over HTTP with a single-line terminal progress bar."
}

func (Args) Version() string {
	return "pget " + version
}

func parseArgs() *Args {
	var args Args
	arg.MustParse(&args)
	return &args
}

// silentTerminal suppresses all drawing for --quiet runs.
type silentTerminal struct{}

func (silentTerminal) Write(p []byte) (int, error) { return len(p), nil }
func (silentTerminal) IsTerminal() bool            { return false }
func (silentTerminal) Columns() int                { return 0 }
func (silentTerminal) CursorTo(int)                {}
func (silentTerminal) CursorUp(int)                {}
func (silentTerminal) CursorDown(int)              {}
func (silentTerminal) ClearLine()                  {}
func (silentTerminal) ClearLineRight()             {}

// renderThrottle maps the CLI's millisecond flag onto the bar option,
// where an explicit 0 means redraw on every update.
func renderThrottle(ms int) time.Duration {
	if ms <= 0 {
		return time.Nanosecond
	}
	return time.Duration(ms) * time.Millisecond
}

// pickTemplate prefers the user's template, then the colored or plain
// default for the current mode.
func pickTemplate(args *Args, plain, colored string) string {
	if args.Template != "" {
		return args.Template
	}
	if args.Color {
		return colored
	}
	return plain
}

func buildBar(args *Args, total int64, format string, formatValue progress.ValueFormatter) (*progress.Bar, error) {
	opts := progress.Options{
		Total:          total,
		Width:          args.Width,
		RenderThrottle: renderThrottle(args.Throttle),
		ClearOnFinish:  args.Clear,
		Format:         formatValue,
		Colorize:       args.Color,
	}
	if args.Quiet {
		opts.Terminal = silentTerminal{}
	}
	if args.Window > 0 {
		opts.Speed = progress.NewWindowedSpeed(time.Duration(args.Window) * time.Second)
	}
	return progress.New(format, opts)
}

func httpGet(rawUrl string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", userAgent)
	return client.Do(req)
}

func main() {
	args := parseArgs()

	for _, rawUrl := range args.Urls {
		var err error
		if isPlaylistUrl(rawUrl) {
			err = fetchPlaylist(args, rawUrl)
		} else {
			err = fetchFile(args, rawUrl)
		}
		if err != nil {
			printError(fmt.Sprintf("%s: %v", rawUrl, err))
		}
	}

	if runErrorCount > 0 {
		os.Exit(1)
	}
}

func isPlaylistUrl(rawUrl string) bool {
	return strings.HasSuffix(stripQuery(rawUrl), ".m3u8")
}
