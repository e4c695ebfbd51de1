// Command showsim runs patterns headless against an in-memory sink,
// either in real time or instantly with a fake clock.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phivk/doppelganger/internal/clock"
	"github.com/phivk/doppelganger/internal/config"
	"github.com/phivk/doppelganger/internal/show"
	"github.com/phivk/doppelganger/internal/sink/fake"
)

func main() {
	var (
		cfgPath = flag.String("config", "configs/frontback.yaml", "installation config")
		name    = flag.String("pattern", "all", "pattern name, or all")
		cycles  = flag.Int("cycles", 1, "times to run the selection")
		fast    = flag.Bool("fast", false, "use a fake clock (sleeps advance time instantly)")
		verbose = flag.Bool("verbose", false, "print per-flush frame summaries")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	snk := fake.New(cfg.StripSizes())
	snk.Verbose = *verbose

	var clk clock.Clock = clock.NewSystem()
	if *fast {
		clk = clock.NewFake(0)
	}

	_, runner := show.Build(cfg, snk, clk)

	for c := 0; c < *cycles; c++ {
		for _, p := range runner.All() {
			if *name != "all" && p.Name != *name {
				continue
			}
			if err := p.Run(cfg.BaseMs); err != nil {
				log.Fatal().Err(err).Str("pattern", p.Name).Msg("pattern failed")
			}
			log.Info().Str("pattern", p.Name).Int("frames", snk.Frames).Msg("pattern done")
		}
	}
}
