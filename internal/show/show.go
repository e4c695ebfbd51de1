// Package show wires configuration, engine, tempo and patterns together
// and runs the outer dispatch loop.
package show

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/phivk/doppelganger/internal/clock"
	"github.com/phivk/doppelganger/internal/config"
	"github.com/phivk/doppelganger/internal/engine"
	"github.com/phivk/doppelganger/internal/pattern"
	"github.com/phivk/doppelganger/internal/sink"
	"github.com/phivk/doppelganger/internal/tempo"
)

// Build assembles the engine and pattern runner from configuration. The
// sink is passed in raw; the configured brightness ceiling is applied
// here so every caller gets it uniformly.
func Build(cfg *config.Config, snk sink.Sink, clk clock.Clock) (*engine.Engine, *pattern.Runner) {
	parts := make([]engine.Part, 0, len(cfg.Parts))
	for _, p := range cfg.Parts {
		parts = append(parts, engine.Part{
			Strip: p.Strip,
			First: p.First,
			Last:  p.Last,
			Group: p.Group,
		})
	}
	capped := sink.WithCeiling(snk, cfg.Brightness)
	eng := engine.New(parts, cfg.ExclusivePairs(), capped, clk, cfg.TickMs)
	mod := tempo.New(cfg.Tempo.Low, cfg.Tempo.High, cfg.Tempo.CycleMs, cfg.Tempo.Smoothing)
	return eng, pattern.NewRunner(eng, mod, clk)
}

// Loop cycles through every named pattern until the context is canceled.
// Patterns are blocking and exclusive; cancellation is only observed
// between pattern invocations.
func Loop(ctx context.Context, eng *engine.Engine, r *pattern.Runner, baseMs uint32) error {
	for {
		for _, p := range r.All() {
			select {
			case <-ctx.Done():
				return eng.ClearAll()
			default:
			}
			if err := p.Run(baseMs); err != nil {
				return err
			}
			log.Info().Str("pattern", p.Name).Msg("pattern done")
		}
	}
}
