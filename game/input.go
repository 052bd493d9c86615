package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/meghashyamc/bounce2d/sim"
)

// Arrow keys produce no input characters, so their repeat is rebuilt from the
// held duration: first after repeatDelay frames, then every repeatInterval
// frames (half a second, then 20 per second at 60 FPS).
const (
	repeatDelay    = 30
	repeatInterval = 3
)

var arrowBindings = []struct {
	key    ebiten.Key
	action sim.Key
}{
	{ebiten.KeyArrowUp, sim.KeyUp},
	{ebiten.KeyArrowLeft, sim.KeyLeft},
	{ebiten.KeyArrowDown, sim.KeyDown},
	{ebiten.KeyArrowRight, sim.KeyRight},
}

type keyState interface {
	// InputChars returns the characters typed this frame, including the
	// platform's key repeats.
	InputChars() []rune
	// PressDuration is the number of frames the key has been held, 0 if released.
	PressDuration(key ebiten.Key) int
	WindowClosing() bool
}

type ebitenKeys struct {
	chars []rune
}

func (e *ebitenKeys) InputChars() []rune {
	e.chars = ebiten.AppendInputChars(e.chars[:0])
	return e.chars
}

func (e *ebitenKeys) PressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

func (e *ebitenKeys) WindowClosing() bool {
	return ebiten.IsWindowBeingClosed()
}

// KeyboardInput turns ebiten's input state into discrete key-down events.
// W/A/S/D come from typed characters, so held keys repeat at the platform's
// rate.
type KeyboardInput struct {
	keys keyState
}

func NewKeyboardInput(keys keyState) *KeyboardInput {
	return &KeyboardInput{keys: keys}
}

func (k *KeyboardInput) Poll() []sim.Event {
	var events []sim.Event
	if k.keys.WindowClosing() {
		events = append(events, sim.Quit())
	}
	if k.keys.PressDuration(ebiten.KeyEscape) == 1 {
		events = append(events, sim.KeyPress(sim.KeyEscape))
	}
	for _, r := range k.keys.InputChars() {
		switch r {
		case 'w', 'a', 's', 'd', 'W', 'A', 'S', 'D':
			events = append(events, sim.KeyPress(sim.ParseKey(string(r))))
		}
	}
	for _, binding := range arrowBindings {
		if repeating(k.keys.PressDuration(binding.key)) {
			events = append(events, sim.KeyPress(binding.action))
		}
	}
	return events
}

func repeating(duration int) bool {
	if duration == 1 {
		return true
	}
	return duration >= repeatDelay && (duration-repeatDelay)%repeatInterval == 0
}
