package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var errInvalidRadius = errors.New("circle radius must be positive")

// screenRenderer draws onto the ebiten screen for one Draw call. ebiten
// presents the screen itself once Draw returns.
type screenRenderer struct {
	screen *ebiten.Image
}

func (r *screenRenderer) Clear(c color.RGBA) error {
	r.screen.Fill(c)
	return nil
}

func (r *screenRenderer) DrawFilledCircle(cx, cy, radius int, c color.RGBA) error {
	if radius <= 0 {
		return fmt.Errorf("%w: got %d", errInvalidRadius, radius)
	}
	vector.DrawFilledCircle(r.screen, float32(cx), float32(cy), float32(radius), c, true)
	return nil
}

func (r *screenRenderer) Present() error {
	return nil
}
