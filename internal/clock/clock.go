// Package clock provides the engine's monotonic time source.
//
// Time is a 32-bit millisecond counter that is allowed to wrap; all
// elapsed-time math must go through Elapsed so wraparound is handled by
// unsigned difference arithmetic rather than absolute comparison.
package clock

import "time"

// Clock is the time source consumed by the engine and patterns.
type Clock interface {
	// Now returns monotonic milliseconds. The counter wraps at 2^32.
	Now() uint32
	// Sleep blocks the calling control flow for ms milliseconds.
	Sleep(ms uint32)
}

// Elapsed returns now - start in milliseconds. Unsigned subtraction gives
// the correct span even when the counter wrapped between start and now.
func Elapsed(now, start uint32) uint32 {
	return now - start
}

// System is the real clock, anchored at construction time so Now starts
// near zero and stays monotonic regardless of wall-clock adjustments.
type System struct {
	start time.Time
}

func NewSystem() *System {
	return &System{start: time.Now()}
}

func (s *System) Now() uint32 {
	return uint32(time.Since(s.start).Milliseconds())
}

func (s *System) Sleep(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Fake is a manually advanced clock for tests and fast simulation.
// Sleep advances time instead of blocking, so drain loops written against
// the real clock terminate immediately under test.
type Fake struct {
	now uint32
}

func NewFake(start uint32) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() uint32 { return f.now }

func (f *Fake) Sleep(ms uint32) { f.now += ms }

// Advance moves the clock forward without modeling a sleep.
func (f *Fake) Advance(ms uint32) { f.now += ms }
