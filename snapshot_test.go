package progress

import (
	"testing"
	"time"
)

func TestComputeSnapshot_DerivesAllMetrics(t *testing.T) {
	snap := computeSnapshot(25, 100, 5*time.Second)
	if snap.Percent != 25 {
		t.Fatalf("expected percent 25, got %v", snap.Percent)
	}
	if snap.Remaining != 75 {
		t.Fatalf("expected remaining 75, got %d", snap.Remaining)
	}
	if snap.Runtime != 5 {
		t.Fatalf("expected runtime 5s, got %v", snap.Runtime)
	}
	if snap.Speed != 5 {
		t.Fatalf("expected speed 5 units/s, got %v", snap.Speed)
	}
	if snap.ETA != 15 {
		t.Fatalf("expected eta 15s, got %v", snap.ETA)
	}
}

func TestComputeSnapshot_ZeroElapsedGuardsDivision(t *testing.T) {
	snap := computeSnapshot(10, 100, 0)
	if snap.Speed != 0 {
		t.Fatalf("expected zero speed with no elapsed time, got %v", snap.Speed)
	}
	if snap.ETA != 0 {
		t.Fatalf("expected zero eta with no speed, got %v", snap.ETA)
	}
}

func TestComputeSnapshot_UnknownTotal(t *testing.T) {
	snap := computeSnapshot(30, 0, 3*time.Second)
	if snap.Percent != 0 || snap.Remaining != 0 || snap.ETA != 0 {
		t.Fatalf("expected percent, remaining and eta to stay zero, got %+v", snap)
	}
	if snap.Speed != 10 {
		t.Fatalf("expected speed to compute without a total, got %v", snap.Speed)
	}
}

func TestComputeSnapshot_RoundsToThousandths(t *testing.T) {
	snap := computeSnapshot(1, 3, 3*time.Second)
	if snap.Percent != 33.333 {
		t.Fatalf("expected percent 33.333, got %v", snap.Percent)
	}
	if snap.Speed != 0.333 {
		t.Fatalf("expected speed 0.333, got %v", snap.Speed)
	}
	if snap.ETA != 6.006 {
		t.Fatalf("expected eta 6.006 from the rounded speed, got %v", snap.ETA)
	}
}

func TestComputeSnapshot_OverrunClampsPercentOnly(t *testing.T) {
	snap := computeSnapshot(150, 100, time.Second)
	if snap.Percent != 100 {
		t.Fatalf("expected percent clamped at 100, got %v", snap.Percent)
	}
	if snap.Remaining != -50 {
		t.Fatalf("expected raw remaining -50, got %d", snap.Remaining)
	}
}

func TestComputeSnapshot_PercentMonotonicUnderGrowingCurrent(t *testing.T) {
	last := -1.0
	for current := int64(0); current <= 120; current++ {
		snap := computeSnapshot(current, 120, time.Duration(current)*time.Millisecond)
		if snap.Percent < last {
			t.Fatalf("expected percent to never decrease, got %v then %v", last, snap.Percent)
		}
		last = snap.Percent
	}
}
