package geometry

import (
	"cmp"

	"gonum.org/v1/gonum/spatial/r2"
)

type Vector struct {
	X float64
	Y float64
}

// DotProduct calculates the dot product of two vectors
func (v Vector) DotProduct(other Vector) float64 {
	return r2.Dot(r2.Vec(v), r2.Vec(other))
}

// Magnitude calculates the magnitude (length) of a vector
func (v Vector) Magnitude() float64 {
	return r2.Norm(r2.Vec(v))
}

// MagnitudeSquared avoids the square root when only comparisons are needed
func (v Vector) MagnitudeSquared() float64 {
	return r2.Norm2(r2.Vec(v))
}

func (v Vector) Add(other Vector) Vector {
	return Vector(r2.Add(r2.Vec(v), r2.Vec(other)))
}

func (v Vector) Sub(other Vector) Vector {
	return Vector(r2.Sub(r2.Vec(v), r2.Vec(other)))
}

func (v Vector) Scale(factor float64) Vector {
	return Vector(r2.Scale(factor, r2.Vec(v)))
}

// Perpendicular rotates the vector by 90 degrees counter-clockwise: (x, y) -> (-y, x)
func (v Vector) Perpendicular() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

func (v Vector) Normalize() Vector {
	magnitude := v.Magnitude()
	if magnitude == 0 {
		return Vector{0, 0}
	}
	return v.Scale(1 / magnitude)
}

// DistanceSquared returns the squared Euclidean distance between two points
func DistanceSquared(a, b Vector) float64 {
	return a.Sub(b).MagnitudeSquared()
}

func Clamp[T cmp.Ordered](value T, min T, max T) T {
	if value > max {
		value = max
		return value
	}

	if value < min {
		value = min
	}

	return value
}
