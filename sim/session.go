package sim

import (
	"context"
)

// Session ties a world to its input and render adapters.
type Session struct {
	World    *World
	Input    InputSource
	Renderer Renderer
}

// Run polls, steps and renders until a quit signal arrives or ctx is done.
// A render failure ends the run and is returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !s.World.Step(s.Input.Poll()) {
			return nil
		}
		if err := s.World.Render(s.Renderer); err != nil {
			return err
		}
	}
}
