package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Strips: []Strip{{ID: 0, Pixels: 60, Port: "/dev/spidev0.0", SpeedKHz: 2500}},
		Parts: []Part{
			{Strip: 0, First: 0, Last: 29, Group: "front"},
			{Strip: 0, First: 30, Last: 59, Group: "back"},
		},
		Exclusive:  [][]string{{"front", "back"}},
		Tempo:      Tempo{Low: 0.3, High: 3.0, CycleMs: 20000, Smoothing: 0.1},
		Brightness: 0.8,
		TickMs:     10,
		BaseMs:     2000,
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, Save(path, validConfig()))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, validConfig(), c)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	bad := validConfig()
	bad.Parts[1].First = 20 // overlaps part 0
	require.NoError(t, Save(path, bad))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"no strips":           func(c *Config) { c.Strips = nil },
		"no parts":            func(c *Config) { c.Parts = nil },
		"zero pixels":         func(c *Config) { c.Strips[0].Pixels = 0 },
		"unknown strip":       func(c *Config) { c.Parts[0].Strip = 7 },
		"range out of strip":  func(c *Config) { c.Parts[1].Last = 60 },
		"inverted range":      func(c *Config) { c.Parts[0].Last = -1 },
		"empty group":         func(c *Config) { c.Parts[0].Group = "" },
		"overlapping parts":   func(c *Config) { c.Parts[1].First = 29 },
		"unknown excl group":  func(c *Config) { c.Exclusive = [][]string{{"front", "side"}} },
		"excl not a pair":     func(c *Config) { c.Exclusive = [][]string{{"front"}} },
		"tempo low zero":      func(c *Config) { c.Tempo.Low = 0 },
		"tempo inverted":      func(c *Config) { c.Tempo.High = 0.1 },
		"tempo cycle zero":    func(c *Config) { c.Tempo.CycleMs = 0 },
		"smoothing too large": func(c *Config) { c.Tempo.Smoothing = 1.5 },
		"brightness zero":     func(c *Config) { c.Brightness = 0 },
		"tick zero":           func(c *Config) { c.TickMs = 0 },
		"base zero":           func(c *Config) { c.BaseMs = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, validConfig().Validate())
}

func TestShippedGeometries(t *testing.T) {
	for _, name := range []string{"frontback.yaml", "grid.yaml"} {
		c, err := Load(filepath.Join("..", "..", "configs", name))
		require.NoError(t, err, name)
		assert.NoError(t, c.Validate(), name)
	}
}

func TestHelpers(t *testing.T) {
	c := validConfig()
	assert.Equal(t, [][2]string{{"front", "back"}}, c.ExclusivePairs())
	assert.Equal(t, map[int]int{0: 60}, c.StripSizes())
}
