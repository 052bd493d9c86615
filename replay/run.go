package replay

import (
	"context"
	"fmt"

	"github.com/meghashyamc/bounce2d/logger"
	"github.com/meghashyamc/bounce2d/render"
	"github.com/meghashyamc/bounce2d/sim"
)

type Result struct {
	Rows        []Row
	Ticks       uint64
	Framebuffer *render.Framebuffer
}

// Run plays script against a fresh world built from settings, rendering
// headlessly and recording every frame.
func Run(ctx context.Context, script *Script, settings sim.Settings, log logger.Logger) (*Result, error) {
	world, err := sim.NewWorld(settings, sim.NewRand(script.Seed), log)
	if err != nil {
		return nil, err
	}

	fb := render.NewFramebuffer(int(settings.Width), int(settings.Height))
	recorder := NewRecorder(world, fb)
	session := &sim.Session{
		World:    world,
		Input:    script.Source(),
		Renderer: recorder,
	}
	if err := session.Run(ctx); err != nil {
		return nil, fmt.Errorf("replay stopped at tick %d: %w", world.Tick(), err)
	}

	log.Info("replay finished", "ticks", world.Tick(), "rows", len(recorder.Rows()))
	return &Result{
		Rows:        recorder.Rows(),
		Ticks:       world.Tick(),
		Framebuffer: fb,
	}, nil
}
