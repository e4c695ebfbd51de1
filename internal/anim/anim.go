// Package anim holds the per-part animation state and the pure brightness
// curve evaluator. Evaluation is a function of (kind, elapsed, duration)
// only; it never touches the clock or the hardware.
package anim

import "math"

// Kind selects the brightness-vs-progress curve of an animation.
type Kind uint8

const (
	Off Kind = iota
	FadeIn
	FadeOut
	Pulse
	Breathe
)

func (k Kind) String() string {
	switch k {
	case Off:
		return "off"
	case FadeIn:
		return "fadein"
	case FadeOut:
		return "fadeout"
	case Pulse:
		return "pulse"
	case Breathe:
		return "breathe"
	default:
		return "unknown"
	}
}

// breatheInhale is the fraction of the duration spent ramping up; the
// remainder is the exhale ramp back to zero.
const breatheInhale = 0.7

// Terminal returns the brightness a kind ends at once its duration has
// elapsed.
func Terminal(k Kind) uint8 {
	if k == FadeIn {
		return 255
	}
	return 0
}

// Evaluate computes the brightness for a kind at elapsed ms into a
// duration ms animation, and reports whether the animation has completed.
//
// The instant elapsed >= duration the result is pinned to Terminal(kind),
// even where the progress formula would round elsewhere, so the final
// brightness is exact regardless of tick granularity. A zero duration
// completes immediately at the terminal value (no division by progress).
func Evaluate(k Kind, elapsed, duration uint32) (uint8, bool) {
	if duration == 0 || elapsed >= duration {
		return Terminal(k), true
	}
	p := float64(elapsed) / float64(duration)
	switch k {
	case Off:
		return 0, false
	case FadeIn:
		return level(p), false
	case FadeOut:
		return level(1 - p), false
	case Pulse:
		if p < 0.5 {
			return level(p / 0.5), false
		}
		return level((1 - p) / 0.5), false
	case Breathe:
		if p < breatheInhale {
			return level(p / breatheInhale), false
		}
		return level((1 - p) / (1 - breatheInhale)), false
	default:
		return 0, false
	}
}

func level(p float64) uint8 {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return uint8(math.Round(255 * p))
}

// State is the mutable animation bookkeeping embedded in a part. Starting
// an animation overwrites the whole struct; there is no queueing. Once
// Active is false the part's brightness is stable until the next start.
type State struct {
	Kind       Kind
	StartMs    uint32
	DurationMs uint32
	Active     bool
}
