// Package geom provides tolerance-aware points and segments for slicing.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the absolute tolerance used for every coordinate comparison.
const Epsilon = 1e-8

// Equal reports whether a and b differ by less than Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Point is a position in model space.
type Point struct {
	X, Y, Z float64
}

// Eq reports whether every coordinate of p and q differs by less than Epsilon.
// Eq is not transitive; callers treat it as an equivalence for topology only.
func (p Point) Eq(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y) && Equal(p.Z, q.Z)
}

// Less orders points lexicographically by X, Y, Z. Coordinates that are
// Equal are treated as ties.
func (p Point) Less(q Point) bool {
	switch {
	case !Equal(p.X, q.X):
		return p.X < q.X
	case !Equal(p.Y, q.Y):
		return p.Y < q.Y
	case !Equal(p.Z, q.Z):
		return p.Z < q.Z
	default:
		return false
	}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Cross returns the cross product.
func (p Point) Cross(q Point) Point {
	return Point{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Length returns the magnitude.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns a unit vector, or the zero vector for zero input.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l, p.Z / l}
}

// String returns the point as "(x, y, z)".
func (p Point) String() string {
	return fmt.Sprintf("(%f, %f, %f)", p.X, p.Y, p.Z)
}

// cellSize is the bucket width used for hashing. It is coarser than Epsilon
// so a point and its tolerance neighbourhood span at most two cells per axis.
const cellSize = 1e-6

// Key identifies the hash bucket that contains a point.
type Key [3]int64

func cellOf(v float64) int64 {
	return int64(math.Floor(v / cellSize))
}

// Key returns the bucket of p. Points that are Eq may still land in
// adjacent buckets; use PointIndex.Near for lookups.
func (p Point) Key() Key {
	return Key{cellOf(p.X), cellOf(p.Y), cellOf(p.Z)}
}
