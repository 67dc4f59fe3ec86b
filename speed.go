package progress

import "time"

// SpeedEstimator supplies the rate behind Snapshot.Speed and the {speed}
// token. The zero default, a nil estimator, is the since-start average
// that computeSnapshot already derives; plugging in NewWindowedSpeed swaps
// the whole bar over to sliding-window rates without touching anything
// else.
type SpeedEstimator interface {
	// Update records the latest absolute position and returns the rate
	// in units per second.
	Update(current int64, elapsed time.Duration) float64
	// Stop releases any background resources and freezes the rate.
	Stop()
}

type windowedSpeed struct {
	meter *Speedometer
	last  int64
}

// NewWindowedSpeed returns an estimator backed by a Speedometer with the
// given sliding window. Pass it in Options.Speed.
func NewWindowedSpeed(window time.Duration) SpeedEstimator {
	return &windowedSpeed{meter: NewSpeedometer(window)}
}

func (w *windowedSpeed) Update(current int64, _ time.Duration) float64 {
	delta := current - w.last
	if delta < 0 {
		delta = 0
	}
	w.last = current
	return w.meter.Record(delta)
}

func (w *windowedSpeed) Stop() {
	w.meter.Stop()
}
