// Command doppelganger runs the installation on real hardware: WS281x
// strips on SPI via periph.io, falling back to a terminal preview when
// no SPI port is present.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/phivk/doppelganger/internal/clock"
	"github.com/phivk/doppelganger/internal/config"
	"github.com/phivk/doppelganger/internal/show"
	"github.com/phivk/doppelganger/internal/sink"
	"github.com/phivk/doppelganger/internal/sink/nrz"
	"github.com/phivk/doppelganger/internal/sink/preview"
)

func main() {
	var (
		cfgPath = flag.String("config", "configs/frontback.yaml", "installation config")
		debug   = flag.Bool("debug", false, "verbose engine logging")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init")
	}

	snk := openSink(cfg)
	defer snk.Close()

	eng, runner := show.Build(cfg, snk, clock.NewSystem())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Info().Int("parts", eng.PartCount()).Str("config", *cfgPath).Msg("show starting")
	if err := show.Loop(ctx, eng, runner, cfg.BaseMs); err != nil {
		log.Fatal().Err(err).Msg("show loop")
	}
	log.Info().Msg("show stopped")
}

func openSink(cfg *config.Config) sink.Sink {
	ports := make([]nrz.StripPort, 0, len(cfg.Strips))
	for _, s := range cfg.Strips {
		ports = append(ports, nrz.StripPort{ID: s.ID, Port: s.Port, Pixels: s.Pixels, SpeedKHz: s.SpeedKHz})
	}
	snk, err := nrz.Open(ports)
	if err != nil {
		log.Warn().Err(err).Msg("no SPI strips, using terminal preview")
		return preview.New(cfg.StripSizes())
	}
	return snk
}
