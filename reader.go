package progress

import (
	"io"
	"net/http"
	"strings"
)

// Reader taps an io.Reader and advances a Bar as bytes flow through, so an
// ordinary io.Copy renders progress as a side effect. A clean EOF forces
// the total to the byte count actually seen and draws one final frame,
// covering servers that never said how much they would send.
type Reader struct {
	r   io.Reader
	bar *Bar

	base  int64
	count int64

	pending    *http.Response
	discovered bool
	finished   bool

	onTotal   []func(int64)
	onAdvance []func(Snapshot)
}

// NewReader taps r. The bar's position at attach time is kept as a base,
// so a bar resuming at a non-zero current keeps counting from there.
func NewReader(r io.Reader, bar *Bar) *Reader {
	return &Reader{r: r, bar: bar, base: bar.Snapshot().Current}
}

// NewResponseReader taps an HTTP response body. The bar's total is
// discovered from the response's Content-Length on the first Read, after
// any OnTotal listeners have had a chance to register. Responses whose
// length does not match the bytes the body will yield, a transparently
// decompressed or still-encoded payload, report no total.
func NewResponseReader(resp *http.Response, bar *Bar) *Reader {
	pr := NewReader(resp.Body, bar)
	pr.pending = resp
	return pr
}

// OnTotal registers a listener for the moment the total is discovered
// from response metadata. Listeners run synchronously, in order.
func (r *Reader) OnTotal(fn func(total int64)) {
	r.onTotal = append(r.onTotal, fn)
}

// OnAdvance registers a listener called with a fresh Snapshot after every
// chunk. Listeners run synchronously, in order.
func (r *Reader) OnAdvance(fn func(Snapshot)) {
	r.onAdvance = append(r.onAdvance, fn)
}

func (r *Reader) Read(p []byte) (int, error) {
	r.discover()
	n, err := r.r.Read(p)
	if n > 0 {
		r.count += int64(n)
		r.bar.Set(r.base+r.count, nil)
		for _, fn := range r.onAdvance {
			fn(r.bar.Snapshot())
		}
	}
	if err == io.EOF {
		r.finish()
	}
	return n, err
}

// Close closes the underlying reader when it is closable. An aborted
// transfer does not force completion, only a clean EOF does.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// discover applies the response's length metadata exactly once, and only
// when the bar does not already know its total.
func (r *Reader) discover() {
	if r.discovered || r.pending == nil {
		return
	}
	r.discovered = true
	resp := r.pending
	r.pending = nil

	length, ok := responseLength(resp)
	if !ok || r.bar.total > 0 {
		return
	}
	total := r.base + length
	if err := r.bar.SetTotal(total); err != nil {
		return
	}
	for _, fn := range r.onTotal {
		fn(total)
	}
}

// finish runs once on clean EOF: whatever arrived is the real total, and
// the final frame must land even if the throttle just swallowed one.
func (r *Reader) finish() {
	if r.finished {
		return
	}
	r.finished = true
	if r.bar.Complete() {
		return
	}
	final := r.base + r.count
	if final <= 0 {
		return
	}
	if err := r.bar.SetTotal(final); err != nil {
		return
	}
	r.bar.Set(final, nil)
	for _, fn := range r.onAdvance {
		fn(r.bar.Snapshot())
	}
}

// responseLength extracts a trustworthy byte total from a response. The
// Content-Length header counts encoded bytes, so it only matches what the
// body yields when no content coding is in play.
func responseLength(resp *http.Response) (int64, bool) {
	if resp == nil || resp.ContentLength <= 0 || resp.Uncompressed {
		return 0, false
	}
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "", "identity":
		return resp.ContentLength, true
	}
	return 0, false
}

// Writer advances a Bar as bytes are written through it, for io.TeeReader
// and io.MultiWriter plumbing. Wrap the destination, or io.Discard when
// the write side is only there to count.
type Writer struct {
	w   io.Writer
	bar *Bar

	base     int64
	count    int64
	finished bool

	onAdvance []func(Snapshot)
}

// NewWriter taps w, counting from the bar's position at attach time.
func NewWriter(w io.Writer, bar *Bar) *Writer {
	return &Writer{w: w, bar: bar, base: bar.Snapshot().Current}
}

// OnAdvance registers a listener called with a fresh Snapshot after every
// chunk. Listeners run synchronously, in order.
func (w *Writer) OnAdvance(fn func(Snapshot)) {
	w.onAdvance = append(w.onAdvance, fn)
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if n > 0 {
		w.count += int64(n)
		w.bar.Set(w.base+w.count, nil)
		for _, fn := range w.onAdvance {
			fn(w.bar.Snapshot())
		}
	}
	return n, err
}

// Finish marks the stream complete by hand. Writers never see EOF, so the
// copier calls this once the source is drained.
func (w *Writer) Finish() {
	if w.finished {
		return
	}
	w.finished = true
	if w.bar.Complete() {
		return
	}
	final := w.base + w.count
	if final <= 0 {
		return
	}
	if err := w.bar.SetTotal(final); err != nil {
		return
	}
	w.bar.Set(final, nil)
	for _, fn := range w.onAdvance {
		fn(w.bar.Snapshot())
	}
}
