package replay

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/gocarina/gocsv"
	"github.com/meghashyamc/bounce2d/sim"
)

// Row is one body's state after a tick. Body 0 is the player.
type Row struct {
	Tick uint64  `csv:"tick"`
	Body int     `csv:"body"`
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
	VX   float64 `csv:"vx"`
	VY   float64 `csv:"vy"`
}

func rowFor(tick uint64, index int, b sim.Body) Row {
	return Row{
		Tick: tick,
		Body: index,
		X:    b.Position.X,
		Y:    b.Position.Y,
		VX:   b.Velocity.X,
		VY:   b.Velocity.Y,
	}
}

// Recorder is a sim.Renderer that snapshots the world every presented frame
// before passing the frame on.
type Recorder struct {
	world *sim.World
	next  sim.Renderer
	rows  []Row
}

func NewRecorder(world *sim.World, next sim.Renderer) *Recorder {
	return &Recorder{world: world, next: next}
}

func (r *Recorder) Clear(c color.RGBA) error {
	return r.next.Clear(c)
}

func (r *Recorder) DrawFilledCircle(cx, cy, radius int, c color.RGBA) error {
	return r.next.DrawFilledCircle(cx, cy, radius, c)
}

func (r *Recorder) Present() error {
	tick := r.world.Tick()
	r.rows = append(r.rows, rowFor(tick, 0, r.world.Player()))
	for i, b := range r.world.Bodies() {
		r.rows = append(r.rows, rowFor(tick, i+1, b))
	}
	return r.next.Present()
}

func (r *Recorder) Rows() []Row {
	return r.rows
}

func WriteCSV(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}

func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return rows, nil
}

// Compare returns an error describing the first row where got and want
// differ by more than tolerance. A zero tolerance demands exact equality.
func Compare(got, want []Row, tolerance float64) error {
	if len(got) != len(want) {
		return fmt.Errorf("trace length %d, want %d", len(got), len(want))
	}
	for i := range got {
		g, w := got[i], want[i]
		if g.Tick != w.Tick || g.Body != w.Body {
			return fmt.Errorf("row %d is tick %d body %d, want tick %d body %d", i, g.Tick, g.Body, w.Tick, w.Body)
		}
		if !near(g.X, w.X, tolerance) || !near(g.Y, w.Y, tolerance) ||
			!near(g.VX, w.VX, tolerance) || !near(g.VY, w.VY, tolerance) {
			return fmt.Errorf("tick %d body %d diverged: got %+v, want %+v", g.Tick, g.Body, g, w)
		}
	}
	return nil
}

func near(a, b, tolerance float64) bool {
	if tolerance == 0 {
		return a == b
	}
	return math.Abs(a-b) <= tolerance
}
