// Package sink abstracts the pixel output. The engine only ever drives a
// single intensity channel; color stays whatever the sink initialized it
// to (normally zero).
package sink

import "math"

// Sink is the LED transport consumed by the engine.
type Sink interface {
	// SetIntensity stages an intensity value for one pixel. Values are
	// buffered until Flush.
	SetIntensity(strip, pixel int, v uint8)
	// Flush pushes one strip's buffer to hardware.
	Flush(strip int) error
	// Close releases resources.
	Close() error
}

type ceiling struct {
	Sink
	factor float64
}

// WithCeiling wraps a sink so every intensity is scaled by factor
// (clamped to [0,1]) before it is staged. This is the uniform global
// brightness cap from configuration; parts never see it.
func WithCeiling(s Sink, factor float64) Sink {
	if factor < 0 {
		factor = 0
	}
	if factor >= 1 {
		return s
	}
	return &ceiling{Sink: s, factor: factor}
}

func (c *ceiling) SetIntensity(strip, pixel int, v uint8) {
	c.Sink.SetIntensity(strip, pixel, uint8(math.Round(float64(v)*c.factor)))
}
