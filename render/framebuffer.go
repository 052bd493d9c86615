// Package render provides a headless render adapter that rasterizes frames
// into an in-memory RGBA image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"
)

var (
	ErrInvalidRadius = errors.New("circle radius must be positive")
	ErrNotCleared    = errors.New("frame drawn before clear")
)

// kappa places cubic Bézier control points so four curves approximate a circle.
const kappa = 0.5522847498

// Framebuffer draws into a back buffer and copies it to Frame on Present.
type Framebuffer struct {
	back    *image.RGBA
	front   *image.RGBA
	raster  *vector.Rasterizer
	cleared bool
	frames  int
}

func NewFramebuffer(width, height int) *Framebuffer {
	bounds := image.Rect(0, 0, width, height)
	return &Framebuffer{
		back:   image.NewRGBA(bounds),
		front:  image.NewRGBA(bounds),
		raster: vector.NewRasterizer(width, height),
	}
}

func (f *Framebuffer) Clear(c color.RGBA) error {
	draw.Draw(f.back, f.back.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	f.cleared = true
	return nil
}

func (f *Framebuffer) DrawFilledCircle(cx, cy, radius int, c color.RGBA) error {
	if radius <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRadius, radius)
	}
	if !f.cleared {
		return ErrNotCleared
	}

	// Rasterize only the circle's bounding box, clipped to the frame. The
	// mask origin is the clipped box's top-left corner.
	box := image.Rect(cx-radius, cy-radius, cx+radius, cy+radius).Intersect(f.back.Bounds())
	if box.Empty() {
		return nil
	}
	f.raster.Reset(box.Dx(), box.Dy())

	x, y, r := float32(cx-box.Min.X), float32(cy-box.Min.Y), float32(radius)
	k := r * kappa
	f.raster.MoveTo(x+r, y)
	f.raster.CubeTo(x+r, y+k, x+k, y+r, x, y+r)
	f.raster.CubeTo(x-k, y+r, x-r, y+k, x-r, y)
	f.raster.CubeTo(x-r, y-k, x-k, y-r, x, y-r)
	f.raster.CubeTo(x+k, y-r, x+r, y-k, x+r, y)
	f.raster.ClosePath()

	f.raster.Draw(f.back, box, image.NewUniform(c), box.Min)
	return nil
}

func (f *Framebuffer) Present() error {
	if !f.cleared {
		return ErrNotCleared
	}
	copy(f.front.Pix, f.back.Pix)
	f.cleared = false
	f.frames++
	return nil
}

// Frame returns the last presented frame. The image is reused by the next
// Present, so callers that keep it must copy it.
func (f *Framebuffer) Frame() *image.RGBA {
	return f.front
}

func (f *Framebuffer) Frames() int {
	return f.frames
}

// WritePNG encodes the last presented frame.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.front); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}
