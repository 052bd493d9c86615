// Package replay drives a world from a scripted input sequence and records
// the resulting trajectories, so runs can be reproduced and compared.
package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/meghashyamc/bounce2d/sim"
	"gopkg.in/yaml.v3"
)

// Script is a deterministic run: a placement seed, a tick limit and the key
// presses delivered on given ticks.
type Script struct {
	Seed   uint64  `yaml:"seed"`
	Ticks  int     `yaml:"ticks"`
	Events []Input `yaml:"events"`
}

// Input is delivered on the poll that precedes step Tick (zero based).
type Input struct {
	Tick int      `yaml:"tick"`
	Keys []string `yaml:"keys"`
	Quit bool     `yaml:"quit"`
}

func Parse(r io.Reader) (*Script, error) {
	var script Script
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func (s *Script) Validate() error {
	if s.Ticks <= 0 {
		return fmt.Errorf("script ticks must be positive, got %d", s.Ticks)
	}
	for i, in := range s.Events {
		if in.Tick < 0 {
			return fmt.Errorf("event %d: negative tick %d", i, in.Tick)
		}
		for _, key := range in.Keys {
			if sim.ParseKey(key) == sim.KeyUnknown {
				return fmt.Errorf("event %d: unknown key %q", i, key)
			}
		}
	}
	return nil
}

// Source returns a fresh input source that plays the script back.
func (s *Script) Source() *Source {
	byTick := make(map[int][]sim.Event)
	for _, in := range s.Events {
		for _, key := range in.Keys {
			byTick[in.Tick] = append(byTick[in.Tick], sim.KeyPress(sim.ParseKey(key)))
		}
		if in.Quit {
			byTick[in.Tick] = append(byTick[in.Tick], sim.Quit())
		}
	}
	return &Source{byTick: byTick, limit: s.Ticks}
}

// Source is a sim.InputSource that yields the scripted events poll by poll
// and a quit once the tick limit is reached.
type Source struct {
	byTick map[int][]sim.Event
	limit  int
	polls  int
}

func (s *Source) Poll() []sim.Event {
	tick := s.polls
	s.polls++
	if tick >= s.limit {
		return []sim.Event{sim.Quit()}
	}
	return s.byTick[tick]
}
