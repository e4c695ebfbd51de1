// Package nrz drives WS281x-class strips over SPI using periph.io's
// nrzled device. Each pixel carries four channels; the installation only
// ever writes the dedicated white/intensity channel and leaves the color
// channels at zero.
package nrz

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

const channels = 4

// StripPort describes one physical strip's SPI attachment.
type StripPort struct {
	ID       int
	Port     string // spireg name, e.g. "/dev/spidev0.0"
	Pixels   int
	SpeedKHz int
}

type strip struct {
	dev    *nrzled.Dev
	closer spi.PortCloser
	buf    []byte
	pixels int
}

// Sink writes intensity frames to one or more nrzled strips. Flush sends
// a strip's whole frame in a single device write.
type Sink struct {
	strips map[int]*strip
}

// Open opens every configured SPI port. On any failure it closes what it
// already opened and returns the error, so the caller can fall back to a
// preview sink.
func Open(ports []StripPort) (*Sink, error) {
	s := &Sink{strips: map[int]*strip{}}
	for _, sp := range ports {
		p, err := spireg.Open(sp.Port)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open spi %q: %w", sp.Port, err)
		}
		st, err := newStrip(p, sp.Pixels, sp.SpeedKHz)
		if err != nil {
			_ = p.Close()
			_ = s.Close()
			return nil, fmt.Errorf("strip %d: %w", sp.ID, err)
		}
		st.closer = p
		s.strips[sp.ID] = st
	}
	return s, nil
}

func newStrip(p spi.Port, pixels, speedKHz int) (*strip, error) {
	if pixels <= 0 {
		return nil, fmt.Errorf("invalid pixel count %d", pixels)
	}
	if speedKHz <= 0 {
		speedKHz = 2500
	}
	opts := nrzled.Opts{
		NumPixels: pixels,
		Channels:  channels,
		Freq:      physic.Frequency(speedKHz) * physic.KiloHertz,
	}
	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, err
	}
	return &strip{
		dev:    dev,
		buf:    make([]byte, pixels*channels),
		pixels: pixels,
	}, nil
}

func (s *Sink) SetIntensity(stripID, pixel int, v uint8) {
	st, ok := s.strips[stripID]
	if !ok || pixel < 0 || pixel >= st.pixels {
		return
	}
	// Color channels stay zero; only the white channel is driven.
	st.buf[pixel*channels+3] = v
}

func (s *Sink) Flush(stripID int) error {
	st, ok := s.strips[stripID]
	if !ok {
		return fmt.Errorf("unknown strip %d", stripID)
	}
	if _, err := st.dev.Write(st.buf); err != nil {
		return fmt.Errorf("strip %d write: %w", stripID, err)
	}
	return nil
}

func (s *Sink) Close() error {
	var first error
	for id, st := range s.strips {
		if err := st.dev.Halt(); err != nil && first == nil {
			first = err
		}
		if st.closer != nil {
			if err := st.closer.Close(); err != nil && first == nil {
				first = err
			}
		}
		delete(s.strips, id)
	}
	return first
}
