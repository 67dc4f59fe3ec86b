package progress

import (
	"sync/atomic"
	"time"
)

// Buckets per second of the sliding window. The ring advances one bucket
// every tickInterval, so rates settle within a quarter second.
const (
	resolution   = 4
	tickInterval = time.Second / resolution
	tickMask     = 0xffff
)

// DefaultWindow is the sliding window used when none is given.
const DefaultWindow = 5 * time.Second

// Speedometer estimates throughput over a sliding time window instead of
// averaging since the start, so the reported rate reacts to stalls and
// bursts within a few seconds.
//
// A background timer advances the window; call Stop when done with the
// meter or its timer goroutine stays alive. Like Bar, a Speedometer
// expects a single recording goroutine.
type Speedometer struct {
	size int
	buf  []int64
	ptr  int
	last uint32
	rate float64

	ticks   atomic.Uint32
	done    chan struct{}
	stopped bool
}

// NewSpeedometer starts a meter whose rate covers roughly the given window.
// Non-positive windows fall back to DefaultWindow.
func NewSpeedometer(window time.Duration) *Speedometer {
	if window <= 0 {
		window = DefaultWindow
	}
	size := int(window/time.Second) * resolution
	if size < resolution {
		size = resolution
	}
	s := &Speedometer{
		size: size,
		buf:  make([]int64, 1, size),
		ptr:  1,
		done: make(chan struct{}),
	}
	s.ticks.Store(1)
	go s.run()
	return s
}

func (s *Speedometer) run() {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.ticks.Add(1)
		}
	}
}

// Record adds delta units at the current time and returns the updated rate
// in units per second.
//
// Buckets carry the running cumulative count forward, so the window rate is
// the difference between the newest and oldest bucket. Until a full second
// of buckets exists the raw cumulative count is returned instead, which
// reads as an optimistic burst rate during the first moments of a transfer.
func (s *Speedometer) Record(delta int64) float64 {
	if s.stopped {
		return s.rate
	}
	now := s.ticks.Load()
	dist := (now - s.last) & tickMask
	if dist > uint32(s.size) {
		dist = uint32(s.size)
	}
	s.last = now

	for ; dist > 0; dist-- {
		if s.ptr == s.size {
			s.ptr = 0
		}
		var prev int64
		if s.ptr == 0 {
			prev = s.buf[s.size-1]
		} else {
			prev = s.buf[s.ptr-1]
		}
		if s.ptr < len(s.buf) {
			s.buf[s.ptr] = prev
		} else {
			s.buf = append(s.buf, prev)
		}
		s.ptr++
	}

	s.buf[s.ptr-1] += delta

	top := s.buf[s.ptr-1]
	var btm int64
	if len(s.buf) == s.size {
		if s.ptr == s.size {
			btm = s.buf[0]
		} else {
			btm = s.buf[s.ptr]
		}
	}

	if len(s.buf) < resolution {
		s.rate = float64(top)
	} else {
		s.rate = float64(top-btm) * resolution / float64(len(s.buf))
	}
	return s.rate
}

// Rate returns the current estimate without recording new progress. Time
// still passes: an idle meter decays toward zero as the window slides.
func (s *Speedometer) Rate() float64 {
	return s.Record(0)
}

// Stop halts the background timer and freezes the estimate. Record and Rate
// keep returning the last computed value afterward. Stop is idempotent.
func (s *Speedometer) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
}
