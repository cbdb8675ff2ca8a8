package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxCatchUp  int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// At most maxCatchUp ticks are reported per call so a stalled frame does not
// trigger a burst of generations.
func NewFixedStep(tps, maxCatchUp int) *FixedStep {
	if maxCatchUp <= 0 {
		maxCatchUp = 1
	}
	fs := &FixedStep{maxCatchUp: maxCatchUp}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops any accumulated time, e.g. after resuming from pause.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// Due reports how many ticks elapsed up to now.
func (f *FixedStep) Due(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step && n < f.maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == f.maxCatchUp && f.accumulator >= f.step {
		f.accumulator %= f.step
	}
	return n
}
