package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAtStart(t *testing.T) {
	for _, k := range []Kind{Off, FadeIn, Pulse, Breathe} {
		lvl, done := Evaluate(k, 0, 1000)
		assert.Equal(t, uint8(0), lvl, "kind %s should start dark", k)
		assert.False(t, done)
	}
	lvl, done := Evaluate(FadeOut, 0, 1000)
	assert.Equal(t, uint8(255), lvl, "fadeout starts fully lit")
	assert.False(t, done)
}

func TestEvaluateTerminal(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		want uint8
	}{
		{Off, 0}, {FadeIn, 255}, {FadeOut, 0}, {Pulse, 0}, {Breathe, 0},
	} {
		lvl, done := Evaluate(tc.kind, 1000, 1000)
		assert.Equal(t, tc.want, lvl, "kind %s terminal", tc.kind)
		assert.True(t, done)

		// Way past the end: still pinned.
		lvl, done = Evaluate(tc.kind, 5000, 1000)
		assert.Equal(t, tc.want, lvl)
		assert.True(t, done)
	}
}

func TestEvaluateZeroDuration(t *testing.T) {
	// Zero duration completes instantly at the terminal value, no
	// progress division.
	lvl, done := Evaluate(FadeIn, 0, 0)
	assert.Equal(t, uint8(255), lvl)
	assert.True(t, done)

	lvl, done = Evaluate(Breathe, 0, 0)
	assert.Equal(t, uint8(0), lvl)
	assert.True(t, done)
}

func TestFadeInMidpoint(t *testing.T) {
	lvl, done := Evaluate(FadeIn, 500, 1000)
	assert.Equal(t, uint8(128), lvl)
	assert.False(t, done)
}

func TestPulseSymmetry(t *testing.T) {
	lvl, _ := Evaluate(Pulse, 250, 1000)
	assert.InDelta(t, 128, int(lvl), 1)
	mirror, _ := Evaluate(Pulse, 750, 1000)
	assert.InDelta(t, int(lvl), int(mirror), 1, "pulse should mirror around its midpoint")

	// Whole first half vs whole second half.
	for e := uint32(0); e < 500; e += 50 {
		up, _ := Evaluate(Pulse, e, 1000)
		down, _ := Evaluate(Pulse, 1000-e, 1000)
		if e == 0 {
			// elapsed=1000 pins to terminal.
			continue
		}
		assert.InDelta(t, int(up), int(down), 1, "elapsed=%d", e)
	}
}

func TestBreatheAsymmetry(t *testing.T) {
	// Inhale peaks at 70% of the duration.
	lvl, done := Evaluate(Breathe, 700, 1000)
	assert.InDelta(t, 255, int(lvl), 1)
	assert.False(t, done)

	// Halfway through the exhale.
	lvl, _ = Evaluate(Breathe, 850, 1000)
	assert.InDelta(t, 128, int(lvl), 1)

	// Exhale reaches zero exactly at the end.
	lvl, done = Evaluate(Breathe, 1000, 1000)
	assert.Equal(t, uint8(0), lvl)
	assert.True(t, done)

	// Inhale is linear: 35% of duration is half of the ramp up.
	lvl, _ = Evaluate(Breathe, 350, 1000)
	assert.InDelta(t, 128, int(lvl), 1)
}

func TestOffStaysDark(t *testing.T) {
	for _, e := range []uint32{0, 1, 500, 999} {
		lvl, _ := Evaluate(Off, e, 1000)
		assert.Equal(t, uint8(0), lvl)
	}
}

func TestElapsedWrapsAroundCounter(t *testing.T) {
	// Start near the top of the 32-bit counter; now has wrapped past 0.
	var start uint32 = 0xFFFFFF00
	var now uint32 = 0x000000F4 // 500ms later, unsigned
	elapsed := now - start
	lvl, done := Evaluate(FadeIn, elapsed, 1000)
	assert.Equal(t, uint8(128), lvl)
	assert.False(t, done)
}
