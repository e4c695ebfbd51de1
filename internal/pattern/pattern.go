// Package pattern contains the named choreographies. Each pattern is a
// blocking script over the engine primitives: clear to a known baseline,
// sample the tempo, start animations on one or more parts, drain until
// everything settled. Patterns iterate exclusivity groups strictly in
// sequence, so parts from rival groups are never lit together; the
// engine additionally rejects any start that would break that.
package pattern

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phivk/doppelganger/internal/anim"
	"github.com/phivk/doppelganger/internal/clock"
	"github.com/phivk/doppelganger/internal/engine"
	"github.com/phivk/doppelganger/internal/tempo"
)

// Runner binds the engine, the tempo modulator and the clock for the
// pattern scripts.
type Runner struct {
	eng *engine.Engine
	mod *tempo.Modulator
	clk clock.Clock
}

func NewRunner(eng *engine.Engine, mod *tempo.Modulator, clk clock.Clock) *Runner {
	return &Runner{eng: eng, mod: mod, clk: clk}
}

// Named is one pattern entry for the dispatch loop.
type Named struct {
	Name string
	Run  func(baseMs uint32) error
}

// All returns every pattern in show order.
func (r *Runner) All() []Named {
	return []Named{
		{"wave", r.Wave},
		{"opposite-pairs", r.OppositePairs},
		{"all-together", r.AllTogether},
		{"breathing-sequence", r.BreathingSequence},
		{"chase", r.Chase},
		{"heartbeat", r.Heartbeat},
	}
}

// begin validates the base duration and resets to the clean baseline
// every pattern must start from.
func (r *Runner) begin(name string, baseMs uint32) error {
	if baseMs == 0 {
		return fmt.Errorf("pattern %s: base duration 0: %w", name, engine.ErrInvalidDuration)
	}
	log.Info().Str("pattern", name).Uint32("base_ms", baseMs).Msg("pattern start")
	return r.eng.ClearAll()
}

// scale samples the tempo once and converts a base duration. The sample
// applies only to phases started afterwards, never to animations already
// in flight.
func (r *Runner) scale(baseMs uint32) uint32 {
	return tempo.Scale(baseMs, r.mod.Speed(r.clk.Now()))
}

// Wave fades parts in one after another across each group, then fades
// them back out in the same order.
func (r *Runner) Wave(baseMs uint32) error {
	if err := r.begin("wave", baseMs); err != nil {
		return err
	}
	for _, g := range r.eng.Groups() {
		parts := r.eng.PartsInGroup(g)
		dur := r.scale(baseMs)
		stagger := dur / uint32(len(parts)+1)
		if err := r.eng.StartSequential(parts, anim.FadeIn, dur, stagger); err != nil {
			return err
		}
		if err := r.eng.Drain(); err != nil {
			return err
		}
		dur = r.scale(baseMs)
		if err := r.eng.StartSequential(parts, anim.FadeOut, dur, dur/uint32(len(parts)+1)); err != nil {
			return err
		}
		if err := r.eng.Drain(); err != nil {
			return err
		}
	}
	return nil
}

// OppositePairs pulses outer and inner part pairs of each group in turn.
func (r *Runner) OppositePairs(baseMs uint32) error {
	if err := r.begin("opposite-pairs", baseMs); err != nil {
		return err
	}
	for _, g := range r.eng.Groups() {
		parts := r.eng.PartsInGroup(g)
		for i, j := 0, len(parts)-1; i <= j; i, j = i+1, j-1 {
			pair := []int{parts[i]}
			if j != i {
				pair = append(pair, parts[j])
			}
			if err := r.eng.StartOnParts(pair, anim.Pulse, r.scale(baseMs)); err != nil {
				return err
			}
			if err := r.eng.Drain(); err != nil {
				return err
			}
		}
	}
	return nil
}

// AllTogether breathes every part of a group in unison.
func (r *Runner) AllTogether(baseMs uint32) error {
	if err := r.begin("all-together", baseMs); err != nil {
		return err
	}
	for _, g := range r.eng.Groups() {
		if err := r.eng.StartOnParts(r.eng.PartsInGroup(g), anim.Breathe, r.scale(baseMs)); err != nil {
			return err
		}
		if err := r.eng.Drain(); err != nil {
			return err
		}
	}
	return nil
}

// BreathingSequence lets each part breathe alone, in config order.
func (r *Runner) BreathingSequence(baseMs uint32) error {
	if err := r.begin("breathing-sequence", baseMs); err != nil {
		return err
	}
	for idx := 0; idx < r.eng.PartCount(); idx++ {
		if err := r.eng.StartAnimation(idx, anim.Breathe, r.scale(baseMs)); err != nil {
			return err
		}
		if err := r.eng.Drain(); err != nil {
			return err
		}
	}
	return nil
}

// Chase races a short pulse across each group.
func (r *Runner) Chase(baseMs uint32) error {
	if err := r.begin("chase", baseMs); err != nil {
		return err
	}
	for _, g := range r.eng.Groups() {
		parts := r.eng.PartsInGroup(g)
		dur := r.scale(baseMs) / 2
		if dur == 0 {
			dur = 1
		}
		if err := r.eng.StartSequential(parts, anim.Pulse, dur, dur/2); err != nil {
			return err
		}
		if err := r.eng.Drain(); err != nil {
			return err
		}
	}
	return nil
}

// Heartbeat gives every group a quick double pulse.
func (r *Runner) Heartbeat(baseMs uint32) error {
	if err := r.begin("heartbeat", baseMs); err != nil {
		return err
	}
	for _, g := range r.eng.Groups() {
		parts := r.eng.PartsInGroup(g)
		beat := r.scale(baseMs) / 3
		if beat == 0 {
			beat = 1
		}
		for b := 0; b < 2; b++ {
			if err := r.eng.StartOnParts(parts, anim.Pulse, beat); err != nil {
				return err
			}
			if err := r.eng.Drain(); err != nil {
				return err
			}
			if b == 0 {
				r.clk.Sleep(beat / 2)
			}
		}
	}
	return nil
}
