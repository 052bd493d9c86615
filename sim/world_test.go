package sim

import (
	"errors"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/meghashyamc/bounce2d/geometry"
	"github.com/meghashyamc/bounce2d/logger"
)

func newTestWorld(t *testing.T, settings Settings, seed uint64) *World {
	t.Helper()
	w, err := NewWorld(settings, rand.New(rand.NewPCG(seed, seed)), logger.Discard())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func emptySettings() Settings {
	s := DefaultSettings()
	s.BodyCount = 0
	return s
}

func TestNewWorldDefaults(t *testing.T) {
	w := newTestWorld(t, DefaultSettings(), 1)

	if got := w.Player().Position; got != (geometry.Vector{X: 100, Y: 100}) {
		t.Errorf("player start = %v, want {100 100}", got)
	}
	bodies := w.Bodies()
	if len(bodies) != 10 {
		t.Fatalf("body count = %d, want 10", len(bodies))
	}
	for i, b := range bodies {
		if b.Velocity != (geometry.Vector{}) {
			t.Errorf("body %d starts moving: %v", i, b.Velocity)
		}
		if b.Position.X < 0 || b.Position.X >= 640 || b.Position.Y < 0 || b.Position.Y >= 480 {
			t.Errorf("body %d placed outside window: %v", i, b.Position)
		}
	}
	if w.Tick() != 0 || !w.Running() {
		t.Errorf("tick = %d running = %v", w.Tick(), w.Running())
	}
}

func TestNewWorldSameSeedSamePlacement(t *testing.T) {
	a := newTestWorld(t, DefaultSettings(), 1234).Bodies()
	b := newTestWorld(t, DefaultSettings(), 1234).Bodies()
	c := newTestWorld(t, DefaultSettings(), 4321).Bodies()

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d differs for the same seed: %v vs %v", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical placement")
	}
}

func TestNewWorldRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero radius", func(s *Settings) { s.Radius = 0 }},
		{"window smaller than a body", func(s *Settings) { s.Width = 15 }},
		{"negative count", func(s *Settings) { s.BodyCount = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if _, err := NewWorld(s, rand.New(rand.NewPCG(1, 1)), logger.Discard()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStepAppliesImpulses(t *testing.T) {
	w := newTestWorld(t, emptySettings(), 1)

	running := w.Step([]Event{KeyPress(KeyRight), KeyPress(KeyRight), KeyPress(KeyDown), KeyPress(KeyUnknown)})
	if !running {
		t.Fatal("world stopped without a quit signal")
	}

	p := w.Player()
	if p.Velocity != (geometry.Vector{X: 2, Y: 1}) {
		t.Errorf("velocity = %v, want {2 1}", p.Velocity)
	}
	if p.Position != (geometry.Vector{X: 102, Y: 101}) {
		t.Errorf("position = %v, want {102 101}", p.Position)
	}

	w.Step([]Event{KeyPress(KeyLeft), KeyPress(KeyUp), KeyPress(KeyUp)})
	p = w.Player()
	if p.Velocity != (geometry.Vector{X: 1, Y: -1}) {
		t.Errorf("velocity = %v, want {1 -1}", p.Velocity)
	}
	if w.Tick() != 2 {
		t.Errorf("tick = %d, want 2", w.Tick())
	}
}

func TestStepQuitSignals(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"quit event", []Event{Quit()}},
		{"escape key", []Event{KeyPress(KeyEscape)}},
		{"quit after movement", []Event{KeyPress(KeyRight), Quit(), KeyPress(KeyDown)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, emptySettings(), 1)
			start := w.Player().Position

			if w.Step(tt.events) {
				t.Fatal("expected Step to report termination")
			}
			if w.Running() {
				t.Error("world still running")
			}
			if w.Tick() != 0 {
				t.Errorf("tick advanced to %d", w.Tick())
			}
			if w.Player().Position != start {
				t.Error("player moved during the quitting tick")
			}
			if w.Step(nil) {
				t.Error("terminated world stepped again")
			}
		})
	}
}

func TestStepResolvesPlayerCollision(t *testing.T) {
	w := newTestWorld(t, emptySettings(), 1)
	w.player.Velocity = geometry.Vector{X: 2, Y: 0}
	w.bodies = []Body{NewBody(118, 100)}

	w.Step(nil)

	if !approxEqual(w.player.Velocity, geometry.Vector{}) {
		t.Errorf("player velocity = %v, want zero", w.player.Velocity)
	}
	if !approxEqual(w.bodies[0].Velocity, geometry.Vector{X: 2, Y: 0}) {
		t.Errorf("body velocity = %v, want {2 0}", w.bodies[0].Velocity)
	}
}

func TestStepResolutionIsSequentialAndInPlace(t *testing.T) {
	w := newTestWorld(t, emptySettings(), 1)
	w.player.Position = geometry.Vector{X: 500, Y: 400}
	w.bodies = []Body{
		{Position: geometry.Vector{X: 100, Y: 200}, Velocity: geometry.Vector{X: 2, Y: 0}},
		NewBody(118, 200),
		NewBody(136, 200),
	}

	w.Step(nil)

	// Pair (0,1) hands the velocity to body 1, and pair (1,2) must see that
	// updated velocity and pass it on to body 2 within the same tick.
	want := []geometry.Vector{{}, {}, {X: 2, Y: 0}}
	for i, v := range want {
		if !approxEqual(w.bodies[i].Velocity, v) {
			t.Errorf("body %d velocity = %v, want %v", i, w.bodies[i].Velocity, v)
		}
	}
}

func TestStepKeepsBodiesInBoundsAndConservesEnergy(t *testing.T) {
	w := newTestWorld(t, DefaultSettings(), 99)
	rng := rand.New(rand.NewPCG(5, 6))
	for i := range w.bodies {
		w.bodies[i].Velocity = geometry.Vector{X: rng.NormFloat64() * 3, Y: rng.NormFloat64() * 3}
	}
	w.player.Velocity = geometry.Vector{X: 4, Y: -2}

	energy := func() float64 {
		e := w.player.Velocity.MagnitudeSquared()
		for _, b := range w.bodies {
			e += b.Velocity.MagnitudeSquared()
		}
		return e
	}
	start := energy()

	for tick := 0; tick < 2000; tick++ {
		w.Step(nil)
		if !inBounds(w.player, w.bounds) {
			t.Fatalf("tick %d: player out of bounds: %v", tick, w.player.Position)
		}
		for i, b := range w.bodies {
			if !inBounds(b, w.bounds) {
				t.Fatalf("tick %d: body %d out of bounds: %v", tick, i, b.Position)
			}
		}
	}

	if got := energy(); got < start*(1-1e-6) || got > start*(1+1e-6) {
		t.Errorf("kinetic energy drifted: %f -> %f", start, got)
	}
}

type call struct {
	op      string
	x, y, r int
	c       color.RGBA
}

type recordingRenderer struct {
	calls   []call
	failAt  int
	drawErr error
}

func (r *recordingRenderer) Clear(c color.RGBA) error {
	r.calls = append(r.calls, call{op: "clear", c: c})
	return nil
}

func (r *recordingRenderer) DrawFilledCircle(cx, cy, radius int, c color.RGBA) error {
	r.calls = append(r.calls, call{op: "circle", x: cx, y: cy, r: radius, c: c})
	if r.drawErr != nil && len(r.calls) == r.failAt {
		return r.drawErr
	}
	return nil
}

func (r *recordingRenderer) Present() error {
	r.calls = append(r.calls, call{op: "present"})
	return nil
}

func TestRenderOrder(t *testing.T) {
	s := DefaultSettings()
	s.BodyCount = 2
	w := newTestWorld(t, s, 1)
	w.bodies[0].Position = geometry.Vector{X: 200.7, Y: 300.2}
	w.bodies[1].Position = geometry.Vector{X: 50, Y: 60}

	r := &recordingRenderer{}
	if err := w.Render(r); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []call{
		{op: "clear", c: BackgroundColor},
		{op: "circle", x: 100, y: 100, r: 10, c: PlayerColor},
		{op: "circle", x: 200, y: 300, r: 10, c: BodyColor},
		{op: "circle", x: 50, y: 60, r: 10, c: BodyColor},
		{op: "present"},
	}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %+v, want %+v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, r.calls[i], want[i])
		}
	}
}

func TestRenderStopsOnDrawFailure(t *testing.T) {
	w := newTestWorld(t, DefaultSettings(), 1)
	drawErr := errors.New("invalid draw call")
	r := &recordingRenderer{failAt: 3, drawErr: drawErr}

	err := w.Render(r)
	if !errors.Is(err, drawErr) {
		t.Fatalf("Render error = %v, want wrapped %v", err, drawErr)
	}
	if got := r.calls[len(r.calls)-1].op; got == "present" {
		t.Error("frame presented after a draw failure")
	}
}
