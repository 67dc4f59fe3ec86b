package progress

import "testing"

func TestFormatDecimal(t *testing.T) {
	if got := FormatDecimal(1234); got != "1234" {
		t.Fatalf("expected 1234, got %q", got)
	}
	if got := FormatDecimal(-5); got != "-5" {
		t.Fatalf("expected -5, got %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1500, "1.5 kB"},
		{1 << 20, "1.0 MB"},
		{-1, "-1"},
	}
	for _, c := range cases {
		if got := FormatBytes(c.v); got != c.want {
			t.Fatalf("expected %q for %d, got %q", c.want, c.v, got)
		}
	}
}
