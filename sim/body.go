package sim

import (
	"image/color"

	"github.com/meghashyamc/bounce2d/geometry"
)

// Epsilon is the smallest center distance at which a collision normal is
// still computed. Closer pairs are skipped for the tick.
const Epsilon = 1e-9

// Bounds describes the playable area and the radius shared by every body.
type Bounds struct {
	Width  float64
	Height float64
	Radius float64
}

// Body is a single moving disc. Mass and radius are the same for every body.
type Body struct {
	Position geometry.Vector
	Velocity geometry.Vector
}

func NewBody(x, y float64) Body {
	return Body{Position: geometry.Vector{X: x, Y: y}}
}

// Integrate advances the body by one frame and bounces it off the walls.
// Each axis is clamped independently so the body always ends inside bounds.
func (b *Body) Integrate(bounds Bounds) {
	b.Position = b.Position.Add(b.Velocity)

	r := bounds.Radius
	if b.Position.X < r {
		b.Position.X = r
		b.Velocity.X = -b.Velocity.X
	}
	if b.Position.X > bounds.Width-r {
		b.Position.X = bounds.Width - r
		b.Velocity.X = -b.Velocity.X
	}
	if b.Position.Y < r {
		b.Position.Y = r
		b.Velocity.Y = -b.Velocity.Y
	}
	if b.Position.Y > bounds.Height-r {
		b.Position.Y = bounds.Height - r
		b.Velocity.Y = -b.Velocity.Y
	}
}

// CollidesWith reports whether the two discs overlap. Exactly tangent discs
// do not collide.
func (b *Body) CollidesWith(other *Body, radius float64) bool {
	diameter := 2 * radius
	return geometry.DistanceSquared(b.Position, other.Position) < diameter*diameter
}

// ResolveCollision applies an elastic collision between two equal-mass discs:
// the velocity components along the line of centers are swapped and the
// tangential components are kept. Positions are not corrected, so discs may
// overlap for a few frames.
//
// It returns false, leaving both bodies untouched, when the centers coincide
// and no collision normal exists.
func (b *Body) ResolveCollision(other *Body) bool {
	d := b.Position.Sub(other.Position)
	distance := d.Magnitude()
	if distance < Epsilon {
		return false
	}

	normal := d.Normalize()
	tangent := normal.Perpendicular()

	selfNormal := b.Velocity.DotProduct(normal)
	selfTangent := b.Velocity.DotProduct(tangent)
	otherNormal := other.Velocity.DotProduct(normal)
	otherTangent := other.Velocity.DotProduct(tangent)

	b.Velocity = normal.Scale(otherNormal).Add(tangent.Scale(selfTangent))
	other.Velocity = normal.Scale(selfNormal).Add(tangent.Scale(otherTangent))
	return true
}

// Circle is what a render adapter needs to draw one body.
type Circle struct {
	X      int
	Y      int
	Radius int
	Color  color.RGBA
}

// Circle returns the body's render data. Coordinates are truncated toward zero.
func (b *Body) Circle(radius float64, c color.RGBA) Circle {
	return Circle{
		X:      int(b.Position.X),
		Y:      int(b.Position.Y),
		Radius: int(radius),
		Color:  c,
	}
}
