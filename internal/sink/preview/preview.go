// Package preview renders strips as grayscale bars in the terminal, used
// when no SPI port is available.
package preview

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

type strip struct {
	drawer display.Drawer
	img    *image.NRGBA
}

// Sink draws each strip on its own ANSI screen row.
type Sink struct {
	strips map[int]*strip
}

// New allocates a screen per strip id -> pixel count.
func New(strips map[int]int) *Sink {
	s := &Sink{strips: map[int]*strip{}}
	for id, n := range strips {
		s.strips[id] = &strip{
			drawer: screen.New(n),
			img:    image.NewNRGBA(image.Rect(0, 0, n, 1)),
		}
	}
	return s
}

func (s *Sink) SetIntensity(stripID, pixel int, v uint8) {
	st, ok := s.strips[stripID]
	if !ok || pixel < 0 || pixel >= st.img.Rect.Dx() {
		return
	}
	st.img.SetNRGBA(pixel, 0, color.NRGBA{R: v, G: v, B: v, A: 255})
}

func (s *Sink) Flush(stripID int) error {
	st, ok := s.strips[stripID]
	if !ok {
		return nil
	}
	return st.drawer.Draw(st.drawer.Bounds(), st.img, image.Point{})
}

func (s *Sink) Close() error {
	var first error
	for _, st := range s.strips {
		if err := st.drawer.Halt(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
