// Package terminal runs the sandbox in a text terminal. World coordinates are
// scaled onto the character grid and every cell whose center falls inside a
// circle is painted with a full block.
package terminal

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/meghashyamc/bounce2d/geometry"
	"github.com/meghashyamc/bounce2d/logger"
	"github.com/meghashyamc/bounce2d/sim"
)

const blockRune = '█'

var errInvalidRadius = errors.New("circle radius must be positive")

// Screen is both the input source and the renderer for a tcell screen.
type Screen struct {
	screen tcell.Screen
	bounds sim.Bounds
	events chan tcell.Event
	quit   chan struct{}
	frame  *time.Ticker
	logger logger.Logger
}

// New initializes screen and starts reading its events. A positive fps makes
// Present wait for the next frame tick, standing in for vsync.
func New(screen tcell.Screen, bounds sim.Bounds, fps int, log logger.Logger) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.HideCursor()

	s := &Screen{
		screen: screen,
		bounds: bounds,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		logger: log,
	}
	if fps > 0 {
		s.frame = time.NewTicker(time.Second / time.Duration(fps))
	}

	cols, rows := screen.Size()
	s.logger.Debug("terminal initialized", "cols", cols, "rows", rows, "fps", fps)

	go s.readEvents()
	return s, nil
}

func (s *Screen) readEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

// Close stops the event reader and restores the terminal.
func (s *Screen) Close() {
	close(s.quit)
	if s.frame != nil {
		s.frame.Stop()
	}
	s.screen.Fini()
}

// Poll drains the events read since the last call without blocking.
func (s *Screen) Poll() []sim.Event {
	var events []sim.Event
	for {
		select {
		case ev := <-s.events:
			if key, ok := ev.(*tcell.EventKey); ok {
				if e, ok := translateKey(key); ok {
					events = append(events, e)
				}
			}
		default:
			return events
		}
	}
}

func translateKey(ev *tcell.EventKey) (sim.Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return sim.Quit(), true
	case tcell.KeyEscape:
		return sim.KeyPress(sim.KeyEscape), true
	case tcell.KeyUp:
		return sim.KeyPress(sim.KeyUp), true
	case tcell.KeyDown:
		return sim.KeyPress(sim.KeyDown), true
	case tcell.KeyLeft:
		return sim.KeyPress(sim.KeyLeft), true
	case tcell.KeyRight:
		return sim.KeyPress(sim.KeyRight), true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if ev.Rune() == 'c' || ev.Rune() == 'C' {
				return sim.Quit(), true
			}
			return sim.Event{}, false
		}
		switch ev.Rune() {
		case 'w', 'a', 's', 'd', 'W', 'A', 'S', 'D':
			return sim.KeyPress(sim.ParseKey(string(ev.Rune()))), true
		}
	}
	return sim.Event{}, false
}

func (s *Screen) Clear(c color.RGBA) error {
	s.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(c)))
	return nil
}

func (s *Screen) DrawFilledCircle(cx, cy, radius int, c color.RGBA) error {
	if radius <= 0 {
		return fmt.Errorf("%w: got %d", errInvalidRadius, radius)
	}

	cols, rows := s.screen.Size()
	if cols == 0 || rows == 0 {
		return nil
	}
	cellW := s.bounds.Width / float64(cols)
	cellH := s.bounds.Height / float64(rows)
	style := tcell.StyleDefault.Foreground(toTcell(c))

	x, y, r := float64(cx), float64(cy), float64(radius)
	minCol := geometry.Clamp(int((x-r)/cellW), 0, cols-1)
	maxCol := geometry.Clamp(int((x+r)/cellW), 0, cols-1)
	minRow := geometry.Clamp(int((y-r)/cellH), 0, rows-1)
	maxRow := geometry.Clamp(int((y+r)/cellH), 0, rows-1)

	painted := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			center := geometry.Vector{X: (float64(col) + 0.5) * cellW, Y: (float64(row) + 0.5) * cellH}
			if geometry.DistanceSquared(center, geometry.Vector{X: x, Y: y}) <= r*r {
				s.screen.SetContent(col, row, blockRune, nil, style)
				painted = true
			}
		}
	}

	// Circles smaller than a cell still show up as one block.
	if !painted {
		col := geometry.Clamp(int(math.Floor(x/cellW)), 0, cols-1)
		row := geometry.Clamp(int(math.Floor(y/cellH)), 0, rows-1)
		s.screen.SetContent(col, row, blockRune, nil, style)
	}
	return nil
}

func (s *Screen) Present() error {
	s.screen.Show()
	if s.frame != nil {
		<-s.frame.C
	}
	return nil
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
