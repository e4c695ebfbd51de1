// Package engine owns the part registry and the render tick. It is the
// single owner of all mutable lighting state; patterns address parts by
// index only. One logical control flow drives the engine; hosts with
// multiple callers must go through Actor.
package engine

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/phivk/doppelganger/internal/anim"
	"github.com/phivk/doppelganger/internal/clock"
	"github.com/phivk/doppelganger/internal/sink"
)

// DefaultTickMs is the render cadence while any part is animating.
const DefaultTickMs = 10

// Part is a contiguous, independently animatable pixel range on one
// strip. Parts are built once from configuration; the collection is
// fixed for the program's lifetime.
type Part struct {
	Strip int
	First int // inclusive
	Last  int // inclusive
	Group string

	level uint8
	state anim.State
}

// Level returns the part's current brightness.
func (p *Part) Level() uint8 { return p.level }

// Active reports whether an animation is in flight on the part.
func (p *Part) Active() bool { return p.state.Active }

// Engine advances every part's animation state and pushes the resulting
// intensities to the sink.
type Engine struct {
	parts     []Part
	exclusive map[string]map[string]bool
	snk       sink.Sink
	clk       clock.Clock
	tickMs    uint32
	strips    []int // distinct strip ids, sorted, for deterministic flush order
}

// New builds an engine over a fixed part collection. exclusivePairs
// lists group names that must never be simultaneously lit (geometry is
// configuration, not engine logic).
func New(parts []Part, exclusivePairs [][2]string, snk sink.Sink, clk clock.Clock, tickMs uint32) *Engine {
	if tickMs == 0 {
		tickMs = DefaultTickMs
	}
	excl := map[string]map[string]bool{}
	add := func(a, b string) {
		if excl[a] == nil {
			excl[a] = map[string]bool{}
		}
		excl[a][b] = true
	}
	for _, pair := range exclusivePairs {
		add(pair[0], pair[1])
		add(pair[1], pair[0])
	}
	seen := map[int]bool{}
	var strips []int
	for _, p := range parts {
		if !seen[p.Strip] {
			seen[p.Strip] = true
			strips = append(strips, p.Strip)
		}
	}
	sort.Ints(strips)
	return &Engine{
		parts:     parts,
		exclusive: excl,
		snk:       snk,
		clk:       clk,
		tickMs:    tickMs,
		strips:    strips,
	}
}

func (e *Engine) PartCount() int { return len(e.parts) }

func (e *Engine) TickMs() uint32 { return e.tickMs }

// Part returns a read view of one part.
func (e *Engine) Part(idx int) (*Part, error) {
	if idx < 0 || idx >= len(e.parts) {
		return nil, fmt.Errorf("part %d of %d: %w", idx, len(e.parts), ErrInvalidIndex)
	}
	return &e.parts[idx], nil
}

// PartsInGroup returns the indices belonging to a group, in config order.
func (e *Engine) PartsInGroup(group string) []int {
	var out []int
	for i := range e.parts {
		if e.parts[i].Group == group {
			out = append(out, i)
		}
	}
	return out
}

// Groups returns the distinct group names in config order.
func (e *Engine) Groups() []string {
	seen := map[string]bool{}
	var out []string
	for i := range e.parts {
		g := e.parts[i].Group
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// ActiveGroups returns the groups that currently have an active part.
func (e *Engine) ActiveGroups() []string {
	seen := map[string]bool{}
	var out []string
	for i := range e.parts {
		if e.parts[i].state.Active && !seen[e.parts[i].Group] {
			seen[e.parts[i].Group] = true
			out = append(out, e.parts[i].Group)
		}
	}
	return out
}

// AnyActive reports whether any part still has an animation in flight.
func (e *Engine) AnyActive() bool {
	for i := range e.parts {
		if e.parts[i].state.Active {
			return true
		}
	}
	return false
}

// StartAnimation unconditionally replaces the part's animation state;
// any in-flight animation is abandoned with no blending. Starting a part
// whose group is exclusive with a currently active group is rejected.
func (e *Engine) StartAnimation(idx int, kind anim.Kind, durationMs uint32) error {
	if idx < 0 || idx >= len(e.parts) {
		return fmt.Errorf("start %s on part %d of %d: %w", kind, idx, len(e.parts), ErrInvalidIndex)
	}
	p := &e.parts[idx]
	if err := e.checkExclusive(p.Group); err != nil {
		return fmt.Errorf("start %s on part %d: %w", kind, idx, err)
	}
	now := e.clk.Now()
	p.state = anim.State{Kind: kind, StartMs: now, DurationMs: durationMs, Active: true}
	if durationMs == 0 {
		// Degenerate duration: complete instantly at the terminal value.
		p.level = anim.Terminal(kind)
		p.state.Active = false
	}
	log.Debug().Int("part", idx).Stringer("kind", kind).Uint32("ms", durationMs).Msg("start animation")
	return nil
}

func (e *Engine) checkExclusive(group string) error {
	rivals := e.exclusive[group]
	if len(rivals) == 0 {
		return nil
	}
	for i := range e.parts {
		if e.parts[i].state.Active && rivals[e.parts[i].Group] {
			return fmt.Errorf("group %q vs active group %q: %w", group, e.parts[i].Group, ErrConstraintViolation)
		}
	}
	return nil
}

// StartOnParts starts the same animation on several parts at once, with
// no stagger. All indices are validated before any state changes.
func (e *Engine) StartOnParts(idxs []int, kind anim.Kind, durationMs uint32) error {
	for _, idx := range idxs {
		if idx < 0 || idx >= len(e.parts) {
			return fmt.Errorf("start %s on part %d of %d: %w", kind, idx, len(e.parts), ErrInvalidIndex)
		}
	}
	for _, idx := range idxs {
		if err := e.StartAnimation(idx, kind, durationMs); err != nil {
			return err
		}
	}
	return nil
}

// StartSequential starts the animation on each part in order, sleeping
// delayMs between consecutive starts. The delay is real blocking time,
// not tick-loop time; draining happens separately.
func (e *Engine) StartSequential(idxs []int, kind anim.Kind, durationMs, delayMs uint32) error {
	for i, idx := range idxs {
		if err := e.StartAnimation(idx, kind, durationMs); err != nil {
			return err
		}
		if i < len(idxs)-1 {
			e.clk.Sleep(delayMs)
		}
	}
	return nil
}

// Tick advances every part to the current time, writes each part's
// brightness onto its whole pixel range, then flushes every strip
// exactly once. With no active parts it is a pass-through that still
// flushes.
func (e *Engine) Tick() error {
	now := e.clk.Now()
	for i := range e.parts {
		p := &e.parts[i]
		if p.state.Active {
			lvl, done := anim.Evaluate(p.state.Kind, clock.Elapsed(now, p.state.StartMs), p.state.DurationMs)
			p.level = lvl
			if done {
				p.state.Active = false
			}
		}
		for px := p.First; px <= p.Last; px++ {
			e.snk.SetIntensity(p.Strip, px, p.level)
		}
	}
	return e.flushAll()
}

// ClearAll forces every part inactive at brightness zero, writes zero to
// every owned pixel and flushes. Patterns call this first to start from
// a known clean state.
func (e *Engine) ClearAll() error {
	for i := range e.parts {
		p := &e.parts[i]
		p.state = anim.State{}
		p.level = 0
		for px := p.First; px <= p.Last; px++ {
			e.snk.SetIntensity(p.Strip, px, 0)
		}
	}
	log.Debug().Msg("clear all parts")
	return e.flushAll()
}

func (e *Engine) flushAll() error {
	for _, id := range e.strips {
		if err := e.snk.Flush(id); err != nil {
			return fmt.Errorf("flush strip %d: %w", id, err)
		}
	}
	return nil
}

// Drain ticks at the configured cadence until no part is active. The
// completing tick pins terminal brightness and flushes it, so the loop
// can exit as soon as AnyActive goes false.
func (e *Engine) Drain() error {
	for e.AnyActive() {
		if err := e.Tick(); err != nil {
			return err
		}
		e.clk.Sleep(e.tickMs)
	}
	return nil
}
