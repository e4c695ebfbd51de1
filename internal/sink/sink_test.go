package sink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phivk/doppelganger/internal/sink"
	"github.com/phivk/doppelganger/internal/sink/fake"
)

func TestCeilingScalesIntensity(t *testing.T) {
	f := fake.New(map[int]int{0: 4})
	s := sink.WithCeiling(f, 0.5)

	s.SetIntensity(0, 0, 255)
	s.SetIntensity(0, 1, 100)
	s.SetIntensity(0, 2, 0)
	assert.NoError(t, s.Flush(0))

	got := f.Snapshot(0)
	assert.Equal(t, uint8(128), got[0])
	assert.Equal(t, uint8(50), got[1])
	assert.Equal(t, uint8(0), got[2])
}

func TestCeilingFullBrightnessIsPassThrough(t *testing.T) {
	f := fake.New(map[int]int{0: 1})
	s := sink.WithCeiling(f, 1.0)
	s.SetIntensity(0, 0, 201)
	assert.Equal(t, uint8(201), f.Snapshot(0)[0])
}

func TestFakeIgnoresOutOfRangeWrites(t *testing.T) {
	f := fake.New(map[int]int{0: 2})
	f.SetIntensity(0, 5, 10)
	f.SetIntensity(3, 0, 10)
	assert.Equal(t, []uint8{0, 0}, f.Snapshot(0))
}

func TestFakeCountsFlushes(t *testing.T) {
	f := fake.New(map[int]int{0: 2, 1: 2})
	assert.NoError(t, f.Flush(0))
	assert.NoError(t, f.Flush(0))
	assert.NoError(t, f.Flush(1))
	assert.Equal(t, 2, f.Flushes[0])
	assert.Equal(t, 1, f.Flushes[1])
	assert.Equal(t, 3, f.Frames)
}
