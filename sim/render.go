package sim

import "image/color"

var (
	BackgroundColor = color.RGBA{255, 255, 255, 255}
	PlayerColor     = color.RGBA{255, 0, 0, 255}
	BodyColor       = color.RGBA{0, 0, 255, 255}
)

// Renderer draws one frame: Clear, any number of DrawFilledCircle calls, then
// Present. Any returned error is fatal for the run.
type Renderer interface {
	Clear(c color.RGBA) error
	DrawFilledCircle(cx, cy, radius int, c color.RGBA) error
	Present() error
}
