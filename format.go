package progress

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// ValueFormatter renders the numeric tokens {current}, {total} and {speed}.
type ValueFormatter func(v int64) string

// FormatDecimal is the default ValueFormatter, plain base-10 digits.
func FormatDecimal(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatBytes renders a value as a human byte size, "2.4 MB" style. Useful
// when the bar counts bytes moved by a Reader or Writer.
func FormatBytes(v int64) string {
	if v < 0 {
		return FormatDecimal(v)
	}
	return humanize.Bytes(uint64(v))
}
