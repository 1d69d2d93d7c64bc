package core

import "time"

// FixedStep paces simulation updates at a steady interval regardless of the
// frame rate driving it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep that fires once per interval. The
// first call to ShouldStep fires immediately.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the step interval. Non-positive values select 100ms.
func (f *FixedStep) SetInterval(d time.Duration) {
	if d <= 0 {
		d = 100 * time.Millisecond
	}
	f.step = d
	if f.accumulator > f.step {
		f.accumulator = f.step
	}
}

// Interval returns the current step interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Pause drops accumulated time so a resumed run does not burst.
func (f *FixedStep) Pause() {
	f.last = time.Time{}
	f.accumulator = 0
}

// ShouldStep reports whether the simulation should advance by one tick.
// At most one step fires per call.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
