// Package tempo implements the global speed modulator: a repeating
// accelerate/decelerate cycle that stretches or compresses every duration
// and delay a pattern requests. The modulator is sampled immediately
// before a pattern phase starts; it is never retro-applied to animations
// already in flight.
package tempo

import (
	"math"

	"github.com/phivk/doppelganger/internal/clock"
)

// Defaults for the installation's tempo curve.
const (
	DefaultLow       = 0.3
	DefaultHigh      = 3.0
	DefaultCycleMs   = 20000
	DefaultSmoothing = 0.1
)

// peakPhase is where in the cycle the target speed reaches High; the
// ramp up is slower than the ramp back down.
const peakPhase = 0.7

// Modulator produces a smoothed speed multiplier that cycles between Low
// and High indefinitely. The reported speed is low-pass filtered toward
// the instantaneous target, which absorbs the slope discontinuities at
// the curve peak and at cycle wraparound.
type Modulator struct {
	Low       float64
	High      float64
	CycleMs   uint32
	Smoothing float64

	speed      float64
	cycleStart uint32
	started    bool
}

func New(low, high float64, cycleMs uint32, smoothing float64) *Modulator {
	return &Modulator{Low: low, High: high, CycleMs: cycleMs, Smoothing: smoothing}
}

func Default() *Modulator {
	return New(DefaultLow, DefaultHigh, DefaultCycleMs, DefaultSmoothing)
}

// Speed returns the current multiplier for nowMs, advancing the smoothing
// filter by one evaluation. The result always stays within [Low, High].
func (m *Modulator) Speed(nowMs uint32) float64 {
	if !m.started {
		m.cycleStart = nowMs
		m.speed = m.Low
		m.started = true
	}
	elapsed := clock.Elapsed(nowMs, m.cycleStart)
	if elapsed >= m.CycleMs {
		m.cycleStart = nowMs
		elapsed = 0
	}
	p := float64(elapsed) / float64(m.CycleMs)

	span := m.High - m.Low
	var target float64
	if p <= peakPhase {
		x := p / peakPhase
		target = m.Low + span*x*x
	} else {
		x := (p - peakPhase) / (1 - peakPhase)
		target = m.High - span*x*x
	}

	m.speed += (target - m.speed) * m.Smoothing
	if m.speed < m.Low {
		m.speed = m.Low
	}
	if m.speed > m.High {
		m.speed = m.High
	}
	return m.speed
}

// Scale converts a base duration or delay into its tempo-adjusted value
// for a previously sampled speed. Non-zero inputs never scale to zero.
func Scale(baseMs uint32, speed float64) uint32 {
	if baseMs == 0 || speed <= 0 {
		return 0
	}
	scaled := math.Round(float64(baseMs) / speed)
	if scaled < 1 {
		return 1
	}
	return uint32(scaled)
}
