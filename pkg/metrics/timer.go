package metrics

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// Timer measures the duration of an operation
type Timer struct {
	clock clockwork.Clock
	start time.Time
}

// NewTimer starts a timer on the real clock
func NewTimer() *Timer {
	return NewTimerWithClock(clockwork.NewRealClock())
}

// NewTimerWithClock starts a timer on clock
func NewTimerWithClock(clock clockwork.Clock) *Timer {
	return &Timer{clock: clock, start: clock.Now()}
}

// Duration returns the time elapsed since the timer started
func (t *Timer) Duration() time.Duration {
	return t.clock.Since(t.start)
}

// ObserveDuration records the elapsed time in seconds
func (t *Timer) ObserveDuration(o prometheus.Observer) {
	o.Observe(t.Duration().Seconds())
}
