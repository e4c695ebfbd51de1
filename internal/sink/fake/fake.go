// Package fake provides a recording sink for headless tests and the
// simulator.
package fake

import "fmt"

// Sink keeps per-strip pixel buffers in memory and counts flushes.
type Sink struct {
	Pixels  map[int][]uint8
	Flushes map[int]int
	Frames  int

	// Verbose prints a compact per-flush summary, useful when running
	// the simulator headless.
	Verbose bool
}

// New allocates buffers for each strip id -> pixel count.
func New(strips map[int]int) *Sink {
	s := &Sink{
		Pixels:  map[int][]uint8{},
		Flushes: map[int]int{},
	}
	for id, n := range strips {
		s.Pixels[id] = make([]uint8, n)
	}
	return s
}

func (s *Sink) SetIntensity(strip, pixel int, v uint8) {
	buf, ok := s.Pixels[strip]
	if !ok || pixel < 0 || pixel >= len(buf) {
		return
	}
	buf[pixel] = v
}

func (s *Sink) Flush(strip int) error {
	s.Flushes[strip]++
	s.Frames++
	if s.Verbose {
		buf := s.Pixels[strip]
		var sum int
		for _, v := range buf {
			sum += int(v)
		}
		avg := 0.0
		if len(buf) > 0 {
			avg = float64(sum) / float64(len(buf))
		}
		fmt.Printf("[strip %d frame %04d] avg=%.1f\n", strip, s.Flushes[strip], avg)
	}
	return nil
}

func (s *Sink) Close() error { return nil }

// Snapshot returns a copy of one strip's buffer.
func (s *Sink) Snapshot(strip int) []uint8 {
	buf := s.Pixels[strip]
	out := make([]uint8, len(buf))
	copy(out, buf)
	return out
}
