package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/meghashyamc/bounce2d/geometry"
	"github.com/meghashyamc/bounce2d/logger"
)

type Settings struct {
	Width       float64
	Height      float64
	Radius      float64
	BodyCount   int
	PlayerStart geometry.Vector
	Impulse     float64 // velocity added per directional key press
}

func DefaultSettings() Settings {
	return Settings{
		Width:       640,
		Height:      480,
		Radius:      10,
		BodyCount:   10,
		PlayerStart: geometry.Vector{X: 100, Y: 100},
		Impulse:     1,
	}
}

func (s Settings) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %g", s.Radius)
	}
	if s.Width < 2*s.Radius || s.Height < 2*s.Radius {
		return fmt.Errorf("window %gx%g is too small for radius %g", s.Width, s.Height, s.Radius)
	}
	if s.BodyCount < 0 {
		return fmt.Errorf("body count must not be negative, got %d", s.BodyCount)
	}
	return nil
}

// World owns the player and the autonomous bodies. It is not safe for
// concurrent use; one goroutine steps and renders it.
type World struct {
	bounds  Bounds
	impulse float64
	player  Body
	bodies  []Body
	tick    uint64
	running bool
	logger  logger.Logger
}

// NewWorld places the player at its start position and scatters the
// autonomous bodies uniformly over the window using rng. All bodies start at
// rest.
func NewWorld(settings Settings, rng *rand.Rand, log logger.Logger) (*World, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world settings: %w", err)
	}

	bodies := make([]Body, settings.BodyCount)
	for i := range bodies {
		x := rng.Float64() * settings.Width
		y := rng.Float64() * settings.Height
		bodies[i] = NewBody(x, y)
	}

	w := &World{
		bounds: Bounds{
			Width:  settings.Width,
			Height: settings.Height,
			Radius: settings.Radius,
		},
		impulse: settings.Impulse,
		player:  NewBody(settings.PlayerStart.X, settings.PlayerStart.Y),
		bodies:  bodies,
		running: true,
		logger:  log,
	}

	w.logger.Info("world created", "bodies", len(bodies), "width", settings.Width, "height", settings.Height)
	return w, nil
}

// Step applies the pending input and advances the simulation by one frame.
// It returns false once a quit signal has been received; the world is then
// frozen and later calls do nothing.
func (w *World) Step(events []Event) bool {
	if !w.running {
		return false
	}

	for _, ev := range events {
		if !w.handleEvent(ev) {
			w.running = false
			w.logger.Info("quit received", "tick", w.tick)
			return false
		}
	}

	w.player.Integrate(w.bounds)

	for i := range w.bodies {
		w.bodies[i].Integrate(w.bounds)
		if w.player.CollidesWith(&w.bodies[i], w.bounds.Radius) {
			w.resolve(&w.player, &w.bodies[i], -1, i)
		}
	}

	for i := range w.bodies {
		for j := i + 1; j < len(w.bodies); j++ {
			if w.bodies[i].CollidesWith(&w.bodies[j], w.bounds.Radius) {
				w.resolve(&w.bodies[i], &w.bodies[j], i, j)
			}
		}
	}

	w.tick++
	return true
}

// handleEvent returns false for quit signals.
func (w *World) handleEvent(ev Event) bool {
	switch ev.Kind {
	case EventQuit:
		return false
	case EventKeyDown:
		switch ev.Key {
		case KeyEscape:
			return false
		case KeyUp:
			w.player.Velocity.Y -= w.impulse
		case KeyDown:
			w.player.Velocity.Y += w.impulse
		case KeyLeft:
			w.player.Velocity.X -= w.impulse
		case KeyRight:
			w.player.Velocity.X += w.impulse
		}
	}
	return true
}

// resolve indexes are for logging only; -1 is the player.
func (w *World) resolve(a, b *Body, i, j int) {
	if !a.ResolveCollision(b) {
		w.logger.Debug("skipped collision with coincident centers", "tick", w.tick, "a", i, "b", j)
	}
}

// Render hands the current frame to r: clear, player, bodies in order, present.
func (w *World) Render(r Renderer) error {
	if err := r.Clear(BackgroundColor); err != nil {
		return fmt.Errorf("failed to clear frame: %w", err)
	}

	for _, c := range w.Circles() {
		if err := r.DrawFilledCircle(c.X, c.Y, c.Radius, c.Color); err != nil {
			return fmt.Errorf("failed to draw circle at (%d, %d): %w", c.X, c.Y, err)
		}
	}

	if err := r.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// Circles returns render data for the player followed by every body.
func (w *World) Circles() []Circle {
	circles := make([]Circle, 0, len(w.bodies)+1)
	circles = append(circles, w.player.Circle(w.bounds.Radius, PlayerColor))
	for i := range w.bodies {
		circles = append(circles, w.bodies[i].Circle(w.bounds.Radius, BodyColor))
	}
	return circles
}

func (w *World) Player() Body {
	return w.player
}

// Bodies returns a copy of the autonomous bodies in collection order.
func (w *World) Bodies() []Body {
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Bounds() Bounds {
	return w.bounds
}

func (w *World) Tick() uint64 {
	return w.tick
}

func (w *World) Running() bool {
	return w.running
}

// NewRand returns a seeded random source for initial placement.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
