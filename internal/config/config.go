// Package config loads the installation's immutable startup
// configuration: physical strips, part geometry, exclusivity groups, the
// tempo curve and output settings. Geometry lives entirely here; the
// engine never hardcodes group membership.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Strip struct {
	ID       int    `yaml:"id"`
	Pixels   int    `yaml:"pixels"`
	Port     string `yaml:"port"`      // spireg name, e.g. /dev/spidev0.0
	SpeedKHz int    `yaml:"speed_khz"` // SPI clock for the NRZ encoding
}

type Part struct {
	Strip int    `yaml:"strip"`
	First int    `yaml:"first"`
	Last  int    `yaml:"last"`
	Group string `yaml:"group"`
}

type Tempo struct {
	Low       float64 `yaml:"low"`
	High      float64 `yaml:"high"`
	CycleMs   uint32  `yaml:"cycle_ms"`
	Smoothing float64 `yaml:"smoothing"`
}

type Config struct {
	Strips []Strip `yaml:"strips"`
	Parts  []Part  `yaml:"parts"`
	// Exclusive lists group name pairs that must never be lit together.
	Exclusive  [][]string `yaml:"exclusive,omitempty"`
	Tempo      Tempo      `yaml:"tempo"`
	Brightness float64    `yaml:"brightness"` // global ceiling, 0..1
	TickMs     uint32     `yaml:"tick_ms"`
	BaseMs     uint32     `yaml:"base_ms"` // default pattern base duration
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks pixel ranges, cross-references and curve parameters.
func (c *Config) Validate() error {
	if len(c.Strips) == 0 {
		return fmt.Errorf("no strips configured")
	}
	if len(c.Parts) == 0 {
		return fmt.Errorf("no parts configured")
	}
	strips := map[int]Strip{}
	for _, s := range c.Strips {
		if s.Pixels <= 0 {
			return fmt.Errorf("strip %d: pixel count %d", s.ID, s.Pixels)
		}
		if _, dup := strips[s.ID]; dup {
			return fmt.Errorf("strip %d: duplicate id", s.ID)
		}
		strips[s.ID] = s
	}

	groups := map[string]bool{}
	perStrip := map[int][]Part{}
	for i, p := range c.Parts {
		s, ok := strips[p.Strip]
		if !ok {
			return fmt.Errorf("part %d: unknown strip %d", i, p.Strip)
		}
		if p.First < 0 || p.Last < p.First || p.Last >= s.Pixels {
			return fmt.Errorf("part %d: range [%d,%d] outside strip %d (%d pixels)", i, p.First, p.Last, p.Strip, s.Pixels)
		}
		if p.Group == "" {
			return fmt.Errorf("part %d: empty group", i)
		}
		groups[p.Group] = true
		perStrip[p.Strip] = append(perStrip[p.Strip], p)
	}
	for id, parts := range perStrip {
		sort.Slice(parts, func(a, b int) bool { return parts[a].First < parts[b].First })
		for i := 1; i < len(parts); i++ {
			if parts[i].First <= parts[i-1].Last {
				return fmt.Errorf("strip %d: overlapping part ranges [%d,%d] and [%d,%d]",
					id, parts[i-1].First, parts[i-1].Last, parts[i].First, parts[i].Last)
			}
		}
	}

	for _, pair := range c.Exclusive {
		if len(pair) != 2 {
			return fmt.Errorf("exclusive entry %v: want exactly two groups", pair)
		}
		for _, g := range pair {
			if !groups[g] {
				return fmt.Errorf("exclusive entry %v: unknown group %q", pair, g)
			}
		}
	}

	if c.Tempo.Low <= 0 || c.Tempo.High < c.Tempo.Low {
		return fmt.Errorf("tempo range [%g,%g]", c.Tempo.Low, c.Tempo.High)
	}
	if c.Tempo.CycleMs == 0 {
		return fmt.Errorf("tempo cycle_ms 0")
	}
	if c.Tempo.Smoothing <= 0 || c.Tempo.Smoothing > 1 {
		return fmt.Errorf("tempo smoothing %g", c.Tempo.Smoothing)
	}
	if c.Brightness <= 0 || c.Brightness > 1 {
		return fmt.Errorf("brightness %g", c.Brightness)
	}
	if c.TickMs == 0 {
		return fmt.Errorf("tick_ms 0")
	}
	if c.BaseMs == 0 {
		return fmt.Errorf("base_ms 0")
	}
	return nil
}

// ExclusivePairs converts the yaml pair list into the engine's form.
func (c *Config) ExclusivePairs() [][2]string {
	out := make([][2]string, 0, len(c.Exclusive))
	for _, pair := range c.Exclusive {
		out = append(out, [2]string{pair[0], pair[1]})
	}
	return out
}

// StripSizes returns strip id -> pixel count, the shape the sinks take.
func (c *Config) StripSizes() map[int]int {
	out := map[int]int{}
	for _, s := range c.Strips {
		out[s.ID] = s.Pixels
	}
	return out
}
